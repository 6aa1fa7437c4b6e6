package common

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadBoard = errors.New("bad board")

// Board holds the 32 playable squares. It is a value type: assigning a board copies it.
type Board [SquareCount]Piece

func (b *Board) Get(sq Square) Piece {
	return b[sq-1]
}

func (b *Board) Put(sq Square, p Piece) {
	if !sq.Valid() {
		panic(fmt.Sprintf("common: put on square %d", sq))
	}
	b[sq-1] = p
}

// At returns the piece on a grid cell; light and off-board cells are always empty.
func (b *Board) At(row, col int) Piece {
	if row < 0 || row >= 8 || col < 0 || col >= 8 || !IsDarkSquare(row, col) {
		return Empty
	}
	return b[squareAt[row][col]-1]
}

func (b *Board) IsEmptyAt(row, col int) bool {
	var c = Coord{row, col}
	return c.OnBoard() && IsDarkSquare(row, col) && b[squareAt[row][col]-1] == Empty
}

func (b *Board) Count(side Side) int {
	var n int
	for _, p := range b {
		if p.Belongs(side) {
			n++
		}
	}
	return n
}

func (b *Board) CountKings(side Side) int {
	var n int
	for _, p := range b {
		if p.IsKing() && p.Belongs(side) {
			n++
		}
	}
	return n
}

func (b *Board) HasKings() bool {
	for _, p := range b {
		if p.IsKing() {
			return true
		}
	}
	return false
}

func NewInitialBoard() Board {
	var b Board
	for sq := Square(1); sq <= 12; sq++ {
		b.Put(sq, WhiteMan)
	}
	for sq := Square(21); sq <= SquareCount; sq++ {
		b.Put(sq, BlackMan)
	}
	return b
}

// String renders the board as eight rows, row 0 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sb.WriteByte(b.At(row, col).Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the format produced by String. Blanks inside a row are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != 8 {
		return Board{}, fmt.Errorf("%w: %d rows", ErrBadBoard, len(rows))
	}
	for row, line := range rows {
		if len(line) != 8 {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrBadBoard, row, len(line))
		}
		for col := 0; col < 8; col++ {
			var p, ok = pieceFromChar(line[col])
			if !ok {
				return Board{}, fmt.Errorf("%w: unknown piece %q", ErrBadBoard, line[col])
			}
			if p == Empty {
				continue
			}
			if !IsDarkSquare(row, col) {
				return Board{}, fmt.Errorf("%w: piece on light square %v", ErrBadBoard, Coord{row, col})
			}
			b.Put(squareAt[row][col], p)
		}
	}
	return b, nil
}
