package common

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func mustSquare(t *testing.T, row, col int) Square {
	t.Helper()
	var sq, err = SquareFromCoord(Coord{row, col})
	require.NoError(t, err)
	return sq
}

func mustPosition(t *testing.T, diagram string, side Side) Position {
	t.Helper()
	var b, err = ParseBoard(diagram)
	require.NoError(t, err)
	return NewPosition(b, side, SquareNone)
}

func TestInitialPositionMoves(t *testing.T) {
	var p = NewInitialPosition()
	var ml = p.GenerateMoves()
	require.Len(t, ml, 7)
	for _, m := range ml {
		require.Equal(t, 5, m.From.Row(), "move %v", m)
		require.Equal(t, 4, m.To.Row(), "move %v", m)
		require.False(t, m.IsCapture())
		require.Equal(t, Black, m.Next.Side)
	}
}

func TestCapturesAreCompulsory(t *testing.T) {
	var p = mustPosition(t, `
		........
		........
		........
		........
		........
		....b...
		.....w..
		w.......`, White)
	var ml = p.GenerateMoves()
	require.Len(t, ml, 1, spew.Sdump(ml))
	require.True(t, ml[0].IsCapture())
	require.Equal(t, mustSquare(t, 5, 4), ml[0].Captured)
	require.Equal(t, Empty, ml[0].Next.Board.At(5, 4))
}

func TestMultiJumpKeepsSideAndRestrictsPiece(t *testing.T) {
	var p = mustPosition(t, `
		........
		........
		........
		..b.....
		........
		....b...
		.....w..
		w.......`, White)
	var ml = p.GenerateMoves()
	require.Len(t, ml, 1)
	var next = ml[0].Next
	require.Equal(t, White, next.Side)
	require.Equal(t, mustSquare(t, 4, 3), next.JumpFrom)

	var cont = next.GenerateMoves()
	require.Len(t, cont, 1)
	require.Equal(t, mustSquare(t, 4, 3), cont[0].From)
	require.Equal(t, mustSquare(t, 2, 1), cont[0].To)
	require.Equal(t, Black, cont[0].Next.Side)
	require.Equal(t, SquareNone, cont[0].Next.JumpFrom)
	require.Equal(t, 0, cont[0].Next.Board.Count(Black))
}

func TestPromotion(t *testing.T) {
	var p = mustPosition(t, `
		........
		..w.....
		........
		........
		........
		........
		........
		......B.`, White)
	var ml = p.GenerateMoves()
	require.Len(t, ml, 2)
	for _, m := range ml {
		require.True(t, m.Promoted)
		require.Equal(t, WhiteKing, m.Next.Board.Get(m.To))
	}

	// kings stay kings
	var black = ml[0].Next
	for _, m := range black.GenerateMoves() {
		require.False(t, m.Promoted)
		require.Equal(t, BlackKing, m.Next.Board.Get(m.To))
	}
}

func TestWinner(t *testing.T) {
	var b Board
	b.Put(1, BlackMan)
	b.Put(6, WhiteKing)
	var p = NewPosition(b, White, SquareNone)

	var _, over = p.Winner()
	require.False(t, over)

	var ml = p.GenerateMoves()
	require.NotEmpty(t, ml)
	for _, m := range ml {
		var winner, over = m.Next.Winner()
		require.True(t, over, "after %v", m)
		require.Equal(t, White, winner)
		require.Empty(t, m.Next.GenerateMoves())
	}
}

func TestGeneratedMovesAreSound(t *testing.T) {
	var walk func(p *Position, depth int)
	walk = func(p *Position, depth int) {
		var ml = p.GenerateMoves()
		var winner, over = p.Winner()
		require.Equal(t, len(ml) == 0, over)
		if over {
			require.Equal(t, p.Side.Opposite(), winner)
		}
		var hasCapture = false
		for _, m := range ml {
			if m.IsCapture() {
				hasCapture = true
			}
		}
		for _, m := range ml {
			require.True(t, m.To.Valid())
			require.Equal(t, Empty, p.Board.Get(m.To), "destination of %v occupied", m)
			require.Equal(t, hasCapture, m.IsCapture(), "captures mixed with steps")
			require.Equal(t, computeKey(&m.Next.Board, m.Next.Side, m.Next.JumpFrom), m.Next.Key)
			if p.Board.Get(m.From).IsKing() {
				require.True(t, m.Next.Board.Get(m.To).IsKing())
			}
			if depth > 1 {
				walk(&m.Next, depth-1)
			}
		}
	}
	var p = NewInitialPosition()
	walk(&p, 5)
}

func TestPerft(t *testing.T) {
	var p = NewInitialPosition()
	for depth, want := range []int{1, 7, 49, 302} {
		require.Equal(t, want, Perft(&p, depth), "depth %v", depth)
	}
}

func TestGenerateStepsIgnoresCaptures(t *testing.T) {
	var p = mustPosition(t, `
		........
		........
		........
		........
		........
		....b...
		.....w..
		w.......`, White)
	require.Len(t, GenerateSteps(&p.Board, White), 2)
	require.Len(t, GenerateJumps(&p.Board, White), 1)
	require.Len(t, GenerateMovesFor(&p.Board, Black), 1)
}

func TestFilterRepetitions(t *testing.T) {
	var p = NewInitialPosition()
	var ml = p.GenerateMoves()
	var h = History{}
	h.Add(&ml[0].Next)
	var filtered = FilterRepetitions(ml, h)
	require.Len(t, filtered, len(ml)-1)
	for _, m := range ml {
		h.Add(&m.Next)
	}
	require.Len(t, FilterRepetitions(ml, h), len(ml))
}
