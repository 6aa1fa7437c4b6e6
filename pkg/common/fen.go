package common

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadFEN = errors.New("bad fen")

// InitialPositionFEN describes NewInitialPosition.
const InitialPositionFEN = "W:W1,2,3,4,5,6,7,8,9,10,11,12:B21,22,23,24,25,26,27,28,29,30,31,32"

// NewPositionFromFEN parses PDN style FEN: "W:W1,K5:B30" lists the side to move and
// the squares of both colours, kings prefixed with K. An optional ":J<sq>" field
// marks a capture chain in progress.
func NewPositionFromFEN(fen string) (Position, error) {
	var fields = strings.Split(strings.TrimSpace(fen), ":")
	if len(fields) < 3 || len(fields) > 4 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadFEN, fen)
	}
	var side Side
	switch fields[0] {
	case "W":
		side = White
	case "B":
		side = Black
	default:
		return Position{}, fmt.Errorf("%w: side %q", ErrBadFEN, fields[0])
	}
	var b Board
	for _, field := range fields[1:3] {
		if field == "" {
			return Position{}, fmt.Errorf("%w: empty field", ErrBadFEN)
		}
		var owner Side
		switch field[0] {
		case 'W':
			owner = White
		case 'B':
			owner = Black
		default:
			return Position{}, fmt.Errorf("%w: colour %q", ErrBadFEN, field[:1])
		}
		if len(field) == 1 {
			continue
		}
		for _, item := range strings.Split(field[1:], ",") {
			var piece = MakeMan(owner)
			if strings.HasPrefix(item, "K") {
				piece = MakeKing(owner)
				item = item[1:]
			}
			var sq, err = ParseSquare(item)
			if err != nil {
				return Position{}, fmt.Errorf("%w: %v", ErrBadFEN, err)
			}
			if b.Get(sq) != Empty {
				return Position{}, fmt.Errorf("%w: square %v listed twice", ErrBadFEN, sq)
			}
			b.Put(sq, piece)
		}
	}
	var jumpFrom = SquareNone
	if len(fields) == 4 {
		if !strings.HasPrefix(fields[3], "J") {
			return Position{}, fmt.Errorf("%w: field %q", ErrBadFEN, fields[3])
		}
		var sq, err = ParseSquare(fields[3][1:])
		if err != nil {
			return Position{}, fmt.Errorf("%w: %v", ErrBadFEN, err)
		}
		if !b.Get(sq).Belongs(side) {
			return Position{}, fmt.Errorf("%w: no %v piece on jump square %v", ErrBadFEN, side, sq)
		}
		if !b.CanJump(sq) {
			return Position{}, fmt.Errorf("%w: piece on jump square %v has no jump", ErrBadFEN, sq)
		}
		jumpFrom = sq
	}
	return NewPosition(b, side, jumpFrom), nil
}

func (p *Position) FEN() string {
	var sb strings.Builder
	if p.Side == White {
		sb.WriteString("W")
	} else {
		sb.WriteString("B")
	}
	for _, side := range [...]Side{White, Black} {
		sb.WriteString(":")
		if side == White {
			sb.WriteString("W")
		} else {
			sb.WriteString("B")
		}
		var items []string
		for sq := Square(1); sq <= SquareCount; sq++ {
			var piece = p.Board.Get(sq)
			if !piece.Belongs(side) {
				continue
			}
			if piece.IsKing() {
				items = append(items, "K"+sq.String())
			} else {
				items = append(items, sq.String())
			}
		}
		sb.WriteString(strings.Join(items, ","))
	}
	if p.JumpFrom != SquareNone {
		fmt.Fprintf(&sb, ":J%v", p.JumpFrom)
	}
	return sb.String()
}
