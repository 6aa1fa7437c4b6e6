package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Square is the canonical 1..32 number of a dark square, white at the bottom:
//
//	.. 32 .. 31 .. 30 .. 29
//	28 .. 27 .. 26 .. 25 ..
//	.. 24 .. 23 .. 22 .. 21
//	20 .. 19 .. 18 .. 17 ..
//	.. 16 .. 15 .. 14 .. 13
//	12 .. 11 .. 10 ..  9 ..
//	..  8 ..  7 ..  6 ..  5
//	 4 ..  3 ..  2 ..  1 ..
type Square int8

const (
	SquareNone  Square = 0
	SquareCount        = 32
)

var ErrBadSquare = errors.New("bad square")

// Coord is a grid coordinate, row 0 at black's back rank.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Coord) OnBoard() bool {
	return c.Row >= 0 && c.Row < 8 && c.Col >= 0 && c.Col < 8
}

func IsDarkSquare(row, col int) bool {
	return (row+col)&1 == 1
}

func (sq Square) Valid() bool {
	return sq >= 1 && sq <= SquareCount
}

func (sq Square) Coord() Coord {
	if !sq.Valid() {
		panic(fmt.Sprintf("common: coord of square %d", sq))
	}
	var id = int(sq) - 1
	var row = 7 - id/4
	var col int
	if row&1 == 1 {
		col = 6 - 2*(id%4)
	} else {
		col = 7 - 2*(id%4)
	}
	return Coord{Row: row, Col: col}
}

func (sq Square) Row() int {
	return sq.Coord().Row
}

// Mirror maps a square to the square it occupies from the other side's point of view.
func (sq Square) Mirror() Square {
	return SquareCount + 1 - sq
}

func (sq Square) String() string {
	if sq == SquareNone {
		return "-"
	}
	return strconv.Itoa(int(sq))
}

func SquareFromCoord(c Coord) (Square, error) {
	if !c.OnBoard() || !IsDarkSquare(c.Row, c.Col) {
		return SquareNone, fmt.Errorf("%w: %v", ErrBadSquare, c)
	}
	return squareAt[c.Row][c.Col], nil
}

func ParseSquare(s string) (Square, error) {
	var n, err = strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > SquareCount {
		return SquareNone, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return Square(n), nil
}

// Direction indexes the four diagonals.
type Direction int

const (
	UpLeft Direction = iota
	UpRight
	DownLeft
	DownRight
	DirectionCount
)

var directionDelta = [DirectionCount]Coord{
	UpLeft:    {-1, -1},
	UpRight:   {-1, 1},
	DownLeft:  {1, -1},
	DownRight: {1, 1},
}

var (
	squareAt [8][8]Square
	// neighbours[sq][dir] is the adjacent square, jumpTargets[sq][dir] the square
	// two steps away; SquareNone when off the board.
	neighbours  [SquareCount + 1][DirectionCount]Square
	jumpTargets [SquareCount + 1][DirectionCount]Square
)

func init() {
	for sq := Square(1); sq <= SquareCount; sq++ {
		var c = sq.Coord()
		squareAt[c.Row][c.Col] = sq
	}
	for sq := Square(1); sq <= SquareCount; sq++ {
		var c = sq.Coord()
		for dir := Direction(0); dir < DirectionCount; dir++ {
			var d = directionDelta[dir]
			var n = Coord{c.Row + d.Row, c.Col + d.Col}
			if n.OnBoard() {
				neighbours[sq][dir] = squareAt[n.Row][n.Col]
			}
			var j = Coord{c.Row + 2*d.Row, c.Col + 2*d.Col}
			if j.OnBoard() {
				jumpTargets[sq][dir] = squareAt[j.Row][j.Col]
			}
		}
	}
}

func Neighbour(sq Square, dir Direction) Square {
	return neighbours[sq][dir]
}

func JumpTarget(sq Square, dir Direction) Square {
	return jumpTargets[sq][dir]
}

// forwardDirections lists the diagonals a man of the given side may use.
var forwardDirections = [2][]Direction{
	White: {UpLeft, UpRight},
	Black: {DownLeft, DownRight},
}

var allDirections = []Direction{UpLeft, UpRight, DownLeft, DownRight}

func PieceDirections(p Piece) []Direction {
	switch p {
	case WhiteKing, BlackKing:
		return allDirections
	case WhiteMan:
		return forwardDirections[White]
	case BlackMan:
		return forwardDirections[Black]
	}
	return nil
}

func promotionRow(side Side) int {
	if side == White {
		return 0
	}
	return 7
}
