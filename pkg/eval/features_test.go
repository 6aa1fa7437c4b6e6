package eval

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

func featureValue(t *testing.T, tag string, b *Board, side Side) float64 {
	t.Helper()
	for _, f := range Features() {
		if f.Tag == tag {
			return f.Fn(b, side)
		}
	}
	t.Fatalf("feature %v not registered", tag)
	return 0
}

func boardOf(pieces map[Square]Piece) Board {
	var b Board
	for sq, p := range pieces {
		b.Put(sq, p)
	}
	return b
}

func TestFeatureTagsAreUnique(t *testing.T) {
	var seen = make(map[string]bool)
	for _, f := range Features() {
		require.False(t, seen[f.Tag], f.Tag)
		seen[f.Tag] = true
		require.NotEmpty(t, f.Name)
		require.NotEmpty(t, f.Description)
		require.NotNil(t, f.Fn)
	}
	require.Greater(t, len(seen), DefaultActiveSize)
}

func TestFeaturesOnInitialBoard(t *testing.T) {
	var b = NewInitialBoard()
	var tests = []struct {
		tag   string
		value float64
	}{
		{"PIECE", 0},
		{"ADV", -4},
		{"APEX", 0},
		{"BACK", 1},
		{"CENT", 2},
		{"CRAMP", 0},
		{"DENY", 0},
		{"DIA", 5},
		{"EXCH", 0},
		{"FORK", 0},
		{"GUARD", 1},
		{"HOLE", 0},
		{"KCENT", 0},
		{"MOB", 4},
		{"MOBIL", 4},
		{"NODE", 0},
		{"OREO", 1},
		{"POLE", 0},
		{"THRET", 0},
	}
	for _, test := range tests {
		require.Equal(t, test.value, featureValue(t, test.tag, &b, White), test.tag)
		require.Equal(t, test.value, featureValue(t, test.tag, &b, Black), test.tag)
	}
}

func TestPieceAdvantage(t *testing.T) {
	var b = boardOf(map[Square]Piece{
		1:  WhiteMan,
		2:  WhiteKing,
		30: BlackMan,
	})
	require.Equal(t, 3.0, featureValue(t, "PIECE", &b, White))
	require.Equal(t, -3.0, featureValue(t, "PIECE", &b, Black))
}

func TestCramp(t *testing.T) {
	var b = boardOf(map[Square]Piece{
		13: WhiteMan,
		9:  WhiteMan,
		17: BlackMan,
		21: BlackMan,
		22: BlackMan,
		25: BlackMan,
	})
	require.Equal(t, 2.0, featureValue(t, "CRAMP", &b, White))
	require.Equal(t, 0.0, featureValue(t, "CRAMP", &b, Black))

	var mirrored = boardOf(map[Square]Piece{
		20: BlackMan,
		19: BlackMan,
		16: WhiteMan,
		12: WhiteMan,
		11: WhiteMan,
		8:  WhiteMan,
	})
	require.Equal(t, 2.0, featureValue(t, "CRAMP", &mirrored, Black))
}

func TestThreatAndDenial(t *testing.T) {
	// The white man on 14 can step to 17 or 18; from either square it threatens the
	// black man on 22, which captures it first.
	var b = boardOf(map[Square]Piece{
		14: WhiteMan,
		22: BlackMan,
	})
	require.Equal(t, 2.0, featureValue(t, "MOB", &b, White))
	require.Equal(t, 2.0, featureValue(t, "THRET", &b, White))
	require.Equal(t, 2.0, featureValue(t, "DENY", &b, White))
	require.Equal(t, 0.0, featureValue(t, "MOBIL", &b, White))
}

func TestPoleAndNode(t *testing.T) {
	var b = boardOf(map[Square]Piece{
		15: WhiteMan,
		29: BlackMan,
	})
	require.Equal(t, 1.0, featureValue(t, "POLE", &b, White))
	require.Equal(t, 1.0, featureValue(t, "NODE", &b, White))
	require.Equal(t, 1.0, featureValue(t, "EXPOS", &b, White))
}

func swapColours(b *Board) Board {
	var result Board
	for sq := Square(1); sq <= SquareCount; sq++ {
		var p = b.Get(sq)
		if p.IsEmpty() {
			continue
		}
		var q = MakeMan(p.Side().Opposite())
		if p.IsKing() {
			q = MakeKing(p.Side().Opposite())
		}
		result.Put(sq.Mirror(), q)
	}
	return result
}

func TestFeaturesAreSideRelative(t *testing.T) {
	var rng = rand.New(rand.NewSource(7))
	var p = NewInitialPosition()
	for ply := 0; ply < 60; ply++ {
		var swapped = swapColours(&p.Board)
		for _, f := range Features() {
			require.Equal(t, f.Fn(&p.Board, White), f.Fn(&swapped, Black), "%v at ply %d\n%v", f.Tag, ply, &p)
			require.Equal(t, f.Fn(&p.Board, Black), f.Fn(&swapped, White), "%v at ply %d\n%v", f.Tag, ply, &p)
		}
		var ml = p.GenerateMoves()
		if len(ml) == 0 {
			break
		}
		p = ml[rng.Intn(len(ml))].Next
	}
}
