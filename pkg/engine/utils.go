package engine

import (
	"fmt"
	"math"
)

const (
	maxHeight = 127
	// WinScore is the score of a won position at the root. Wins found deeper
	// score less so that shorter wins are preferred.
	WinScore = 1_000_000.0
	valueWin = WinScore - 2*maxHeight
)

var (
	valueInfinity = math.Inf(1)
)

func winIn(height int) float64 {
	return WinScore - float64(height)
}

func lossIn(height int) float64 {
	return -WinScore + float64(height)
}

// IsWinScore reports whether v is a forced win or loss.
func IsWinScore(v float64) bool {
	return v >= valueWin || v <= -valueWin
}

// FormatScore prints decided scores as the number of plies to the end of the game.
func FormatScore(v float64) string {
	if v >= valueWin {
		return fmt.Sprintf("win %d", int(WinScore-v))
	}
	if v <= -valueWin {
		return fmt.Sprintf("loss %d", int(WinScore+v))
	}
	return fmt.Sprintf("%.4f", v)
}
