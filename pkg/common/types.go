package common

// Side identifies one of the two players.
type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Opposite() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Piece is the content of a playable square.
type Piece uint8

const (
	Empty Piece = iota
	WhiteMan
	WhiteKing
	BlackMan
	BlackKing
)

func MakeMan(side Side) Piece {
	if side == White {
		return WhiteMan
	}
	return BlackMan
}

func MakeKing(side Side) Piece {
	if side == White {
		return WhiteKing
	}
	return BlackKing
}

// Side panics for Empty; callers check IsEmpty first.
func (p Piece) Side() Side {
	switch p {
	case WhiteMan, WhiteKing:
		return White
	case BlackMan, BlackKing:
		return Black
	}
	panic("common: side of empty piece")
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

func (p Piece) IsMan() bool {
	return p == WhiteMan || p == BlackMan
}

func (p Piece) Belongs(side Side) bool {
	switch p {
	case WhiteMan, WhiteKing:
		return side == White
	case BlackMan, BlackKing:
		return side == Black
	}
	return false
}

func (p Piece) Promote() Piece {
	switch p {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	}
	return p
}

func (p Piece) Char() byte {
	switch p {
	case WhiteMan:
		return 'w'
	case WhiteKing:
		return 'W'
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	}
	return '.'
}

func pieceFromChar(ch byte) (Piece, bool) {
	switch ch {
	case 'w':
		return WhiteMan, true
	case 'W':
		return WhiteKing, true
	case 'b':
		return BlackMan, true
	case 'B':
		return BlackKing, true
	case '.', '_', '-':
		return Empty, true
	}
	return Empty, false
}
