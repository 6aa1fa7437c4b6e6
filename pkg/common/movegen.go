package common

// MaxMoves bounds the number of moves in any reachable position.
const MaxMoves = 64

// GenerateMoves lists the legal moves of the side to move. Captures are compulsory:
// when any jump exists only jumps are returned, and a pending chain restricts the
// list to jumps of the chain piece.
func (p *Position) GenerateMoves() []Move {
	return p.AppendMoves(make([]Move, 0, 16))
}

func (p *Position) AppendMoves(ml []Move) []Move {
	if p.JumpFrom != SquareNone {
		return p.appendJumps(ml, p.JumpFrom)
	}
	var start = len(ml)
	for sq := Square(1); sq <= SquareCount; sq++ {
		if p.Board.Get(sq).Belongs(p.Side) {
			ml = p.appendJumps(ml, sq)
		}
	}
	if len(ml) > start {
		return ml
	}
	for sq := Square(1); sq <= SquareCount; sq++ {
		if p.Board.Get(sq).Belongs(p.Side) {
			ml = p.appendSteps(ml, sq)
		}
	}
	return ml
}

// HasMoves is GenerateMoves without building the list.
func (p *Position) HasMoves() bool {
	if p.JumpFrom != SquareNone {
		return p.Board.Get(p.JumpFrom).Belongs(p.Side) && p.Board.CanJump(p.JumpFrom)
	}
	for sq := Square(1); sq <= SquareCount; sq++ {
		var piece = p.Board.Get(sq)
		if !piece.Belongs(p.Side) {
			continue
		}
		if p.Board.CanJump(sq) {
			return true
		}
		for _, dir := range PieceDirections(piece) {
			var to = neighbours[sq][dir]
			if to != SquareNone && p.Board.Get(to) == Empty {
				return true
			}
		}
	}
	return false
}

// GenerateMovesFor lists the moves side would have if it were to move on b.
func GenerateMovesFor(b *Board, side Side) []Move {
	var p = NewPosition(*b, side, SquareNone)
	return p.GenerateMoves()
}

// GenerateSteps lists the non-capturing moves of side, ignoring compulsory captures.
func GenerateSteps(b *Board, side Side) []Move {
	var p = NewPosition(*b, side, SquareNone)
	var ml []Move
	for sq := Square(1); sq <= SquareCount; sq++ {
		if b.Get(sq).Belongs(side) {
			ml = p.appendSteps(ml, sq)
		}
	}
	return ml
}

// GenerateJumps lists the single jumps available to side.
func GenerateJumps(b *Board, side Side) []Move {
	var p = NewPosition(*b, side, SquareNone)
	var ml []Move
	for sq := Square(1); sq <= SquareCount; sq++ {
		if b.Get(sq).Belongs(side) {
			ml = p.appendJumps(ml, sq)
		}
	}
	return ml
}

// CanJump reports whether the piece on sq has a capture available.
func (b *Board) CanJump(sq Square) bool {
	var piece = b.Get(sq)
	if piece == Empty {
		return false
	}
	var side = piece.Side()
	for _, dir := range PieceDirections(piece) {
		var to = jumpTargets[sq][dir]
		if to == SquareNone || b.Get(to) != Empty {
			continue
		}
		var over = b.Get(neighbours[sq][dir])
		if over != Empty && over.Side() != side {
			return true
		}
	}
	return false
}

func (p *Position) appendSteps(ml []Move, from Square) []Move {
	var piece = p.Board.Get(from)
	for _, dir := range PieceDirections(piece) {
		var to = neighbours[from][dir]
		if to == SquareNone || p.Board.Get(to) != Empty {
			continue
		}
		var landed, promoted = promote(piece, to)
		var next = *p
		next.Board.Put(from, Empty)
		next.Board.Put(to, landed)
		next.Side = p.Side.Opposite()
		next.JumpFrom = SquareNone
		next.Key ^= pieceKeys[from][piece] ^ pieceKeys[to][landed] ^
			sideKey ^ jumpKeys[p.JumpFrom]
		ml = append(ml, Move{
			From:     from,
			To:       to,
			Captured: SquareNone,
			Promoted: promoted,
			Next:     next,
		})
	}
	return ml
}

func (p *Position) appendJumps(ml []Move, from Square) []Move {
	var piece = p.Board.Get(from)
	if !piece.Belongs(p.Side) {
		return ml
	}
	for _, dir := range PieceDirections(piece) {
		var to = jumpTargets[from][dir]
		if to == SquareNone || p.Board.Get(to) != Empty {
			continue
		}
		var over = neighbours[from][dir]
		var captured = p.Board.Get(over)
		if captured == Empty || captured.Belongs(p.Side) {
			continue
		}
		var landed, promoted = promote(piece, to)
		var next = *p
		next.Board.Put(from, Empty)
		next.Board.Put(over, Empty)
		next.Board.Put(to, landed)
		next.Key ^= pieceKeys[from][piece] ^ pieceKeys[over][captured] ^
			pieceKeys[to][landed] ^ jumpKeys[p.JumpFrom]
		if next.Board.CanJump(to) {
			next.JumpFrom = to
		} else {
			next.JumpFrom = SquareNone
			next.Side = p.Side.Opposite()
			next.Key ^= sideKey
		}
		next.Key ^= jumpKeys[next.JumpFrom]
		ml = append(ml, Move{
			From:     from,
			To:       to,
			Captured: over,
			Promoted: promoted,
			Next:     next,
		})
	}
	return ml
}

func promote(piece Piece, to Square) (Piece, bool) {
	if piece.IsMan() && to.Row() == promotionRow(piece.Side()) {
		return piece.Promote(), true
	}
	return piece, false
}
