package engine

import (
	"time"

	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

// Evaluator scores a board from the point of view of side. Implementations must not
// change their weights while a search is running.
type Evaluator interface {
	Score(b *Board, side Side) float64
}

type LimitsType struct {
	Depth    int
	MoveTime time.Duration
	Nodes    int64
}

type SearchParams struct {
	Position Position
	// Moves restricts the root moves when not empty.
	Moves    []Move
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	Move  Move
	Score float64
	Depth int
	Nodes int64
	Time  time.Duration
}
