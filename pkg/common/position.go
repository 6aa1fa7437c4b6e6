package common

import "fmt"

// Position is a game state. JumpFrom is set while a capture chain must be continued
// by the piece standing on that square.
type Position struct {
	Board    Board
	Side     Side
	JumpFrom Square
	Key      uint64
}

func NewPosition(b Board, side Side, jumpFrom Square) Position {
	return Position{
		Board:    b,
		Side:     side,
		JumpFrom: jumpFrom,
		Key:      computeKey(&b, side, jumpFrom),
	}
}

// NewInitialPosition returns the starting position with white to move.
func NewInitialPosition() Position {
	return NewPosition(NewInitialBoard(), White, SquareNone)
}

func (p *Position) String() string {
	var s = p.Board.String() + p.Side.String() + " to move"
	if p.JumpFrom != SquareNone {
		s += fmt.Sprintf(", must jump from %v", p.JumpFrom)
	}
	return s
}

// Move is a single step or a single jump. A capture chain consists of several moves
// made by the same side; Next.JumpFrom tells whether the chain continues.
type Move struct {
	From     Square
	To       Square
	Captured Square
	Promoted bool
	Next     Position
}

func (m Move) IsCapture() bool {
	return m.Captured != SquareNone
}

func (m Move) String() string {
	if m.IsCapture() {
		return fmt.Sprintf("%vx%v", m.From, m.To)
	}
	return fmt.Sprintf("%v-%v", m.From, m.To)
}

// Winner reports the winning side once the side to move has no legal moves.
func (p *Position) Winner() (Side, bool) {
	if p.HasMoves() {
		return White, false
	}
	return p.Side.Opposite(), true
}

// FindMove returns the legal move with the given endpoints.
func (p *Position) FindMove(from, to Square) (Move, bool) {
	for _, m := range p.GenerateMoves() {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}
