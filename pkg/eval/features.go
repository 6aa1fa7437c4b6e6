package eval

import (
	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

// Square sets below are written for white, whose men start on squares 1..12;
// rel mirrors them for black.
var (
	centerSquares       = [...]Square{10, 11, 14, 15, 18, 19, 22, 23}
	apexSquares         = [...]Square{7, 26}
	bridgeSquares       = [...]Square{1, 3}
	oreoSquares         = [...]Square{2, 3, 7}
	doubleCornerSquares = [...]Square{1, 5, 28, 32}
	moveSystemSquares   = [...]Square{1, 2, 3, 4}
	crampSquare         = Square(13)
	crampSupport        = [...]Square{9, 14}
	crampBlockers       = [...]Square{17, 21, 22, 25}
)

var axes = [2][2]Direction{
	{UpLeft, DownRight},
	{UpRight, DownLeft},
}

func rel(side Side, sq Square) Square {
	if side == White {
		return sq
	}
	return sq.Mirror()
}

// rank counts rows from the side's own back row, starting at 0.
func rank(side Side, sq Square) int {
	if side == White {
		return 7 - sq.Row()
	}
	return sq.Row()
}

func owns(b *Board, sq Square, side Side) bool {
	return sq != SquareNone && b.Get(sq).Belongs(side)
}

func isEmpty(b *Board, sq Square) bool {
	return sq != SquareNone && b.Get(sq) == Empty
}

func material(b *Board, side Side) float64 {
	var result float64
	for _, p := range b {
		if !p.Belongs(side) {
			continue
		}
		if p.IsKing() {
			result += 3
		} else {
			result += 2
		}
	}
	return result
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func piece(b *Board, side Side) float64 {
	return material(b, side) - material(b, side.Opposite())
}

func advancement(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		var p = b.Get(sq)
		if !p.IsMan() || !p.Belongs(side) {
			continue
		}
		switch rank(side, sq) {
		case 4, 5:
			result++
		case 2, 3:
			result--
		}
	}
	return result
}

func apex(b *Board, side Side) float64 {
	if b.HasKings() {
		return 0
	}
	var own, opp bool
	for _, sq := range apexSquares {
		var p = b.Get(sq)
		if p.IsMan() && p.Belongs(side) {
			own = true
		}
		if p.Belongs(side.Opposite()) {
			opp = true
		}
	}
	if own && !opp {
		return -1
	}
	return 0
}

func backRowBridge(b *Board, side Side) float64 {
	if b.CountKings(side.Opposite()) != 0 {
		return 0
	}
	for _, sq := range bridgeSquares {
		if !owns(b, rel(side, sq), side) {
			return 0
		}
	}
	return 1
}

func centerControl(b *Board, side Side) float64 {
	var result float64
	for _, sq := range centerSquares {
		var p = b.Get(rel(side, sq))
		if p.IsMan() && p.Belongs(side) {
			result++
		}
	}
	return result
}

func centerControl2(b *Board, side Side) float64 {
	var reachable = stepTargets(b, side)
	var result float64
	for _, sq := range centerSquares {
		sq = rel(side, sq)
		if owns(b, sq, side) || reachable[sq] {
			result++
		}
	}
	return result
}

func doubleCorner(b *Board, side Side) float64 {
	var own = material(b, side)
	if own > 6 || material(b, side.Opposite()) <= own {
		return 0
	}
	var reachable = stepTargets(b, side)
	for _, sq := range doubleCornerSquares {
		if reachable[sq] {
			return 1
		}
	}
	return 0
}

func cramp(b *Board, side Side) float64 {
	if !owns(b, rel(side, crampSquare), side) {
		return 0
	}
	if !owns(b, rel(side, crampSupport[0]), side) && !owns(b, rel(side, crampSupport[1]), side) {
		return 0
	}
	for _, sq := range crampBlockers {
		if !owns(b, rel(side, sq), side.Opposite()) {
			return 0
		}
	}
	return 2
}

func denial(b *Board, side Side) float64 {
	var denied [SquareCount + 1]bool
	var result float64
	for _, m := range GenerateSteps(b, side) {
		if denied[m.To] {
			continue
		}
		if capturedWithoutExchange(&m.Next.Board, m.To, side) {
			denied[m.To] = true
			result++
		}
	}
	return result
}

// capturedWithoutExchange reports whether the opponent can take the piece of side on
// sq while side has no capture in reply.
func capturedWithoutExchange(b *Board, sq Square, side Side) bool {
	for _, reply := range GenerateJumps(b, side.Opposite()) {
		if reply.Captured != sq {
			continue
		}
		if len(GenerateJumps(&reply.Next.Board, side)) == 0 {
			return true
		}
	}
	return false
}

func doubleDiagonal(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if owns(b, sq, side) && diagonalDistance(sq) == 0 {
			result++
		}
	}
	return result
}

// diagonalDistance is the number of files between sq and the nearest diagonal
// ending in a double corner.
func diagonalDistance(sq Square) int {
	var c = sq.Coord()
	var d = c.Row - c.Col
	if d < 0 {
		d = -d
	}
	return (d - 1) / 2
}

func diagonalMoment(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if !owns(b, sq, side) {
			continue
		}
		switch diagonalDistance(sq) {
		case 0:
			result += 1.5
		case 1:
			result += 1
		case 2:
			result += 0.5
		}
	}
	return result
}

func dyke(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if !owns(b, sq, side) {
			continue
		}
		for _, dir := range [...]Direction{DownLeft, DownRight} {
			var second = Neighbour(sq, dir)
			if !owns(b, second, side) {
				continue
			}
			if owns(b, Neighbour(second, dir), side) {
				result++
			}
		}
	}
	return result
}

func exchange(b *Board, side Side) float64 {
	var counted [SquareCount + 1]bool
	var result float64
	for _, m := range GenerateSteps(b, side) {
		if counted[m.To] || !forcesExchange(&m.Next) {
			continue
		}
		counted[m.To] = true
		result++
	}
	return result
}

// forcesExchange reports whether the opponent, to move in p, must capture and every
// capture can be answered by a capture.
func forcesExchange(p *Position) bool {
	var replies = p.GenerateMoves()
	if len(replies) == 0 || !replies[0].IsCapture() {
		return false
	}
	for _, reply := range replies {
		if len(GenerateJumps(&reply.Next.Board, p.Side.Opposite())) == 0 {
			return false
		}
	}
	return true
}

func exposure(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if !owns(b, sq, side) {
			continue
		}
		for _, axis := range axes {
			if isEmpty(b, Neighbour(sq, axis[0])) && isEmpty(b, Neighbour(sq, axis[1])) {
				result++
				break
			}
		}
	}
	return result
}

func fork(b *Board, side Side) float64 {
	var result float64
	for _, m := range GenerateSteps(b, side) {
		var targets = attackedPieces(&m.Next.Board, m.To)
		if sameRowPair(targets) {
			result++
		}
	}
	return result
}

// attackedPieces lists the pieces the piece on sq could jump.
func attackedPieces(b *Board, sq Square) []Square {
	var attacker = b.Get(sq)
	var result []Square
	for _, dir := range PieceDirections(attacker) {
		var over = Neighbour(sq, dir)
		if owns(b, over, attacker.Side().Opposite()) && isEmpty(b, JumpTarget(sq, dir)) {
			result = append(result, over)
		}
	}
	return result
}

func sameRowPair(squares []Square) bool {
	for i := range squares {
		for j := i + 1; j < len(squares); j++ {
			var a, c = squares[i].Coord(), squares[j].Coord()
			if a.Row == c.Row && AbsDelta(a.Col, c.Col) == 2 {
				return true
			}
		}
	}
	return false
}

func gap(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if b.Get(sq) != Empty {
			continue
		}
		for _, axis := range axes {
			var l, r = Neighbour(sq, axis[0]), Neighbour(sq, axis[1])
			if owns(b, l, side) && (r == SquareNone || owns(b, r, side)) ||
				owns(b, r, side) && l == SquareNone {
				result++
				break
			}
		}
	}
	return result
}

func backRowControl(b *Board, side Side) float64 {
	if b.CountKings(side.Opposite()) != 0 {
		return 0
	}
	return boolToFloat(allOwned(b, side, bridgeSquares[:]) || allOwned(b, side, oreoSquares[:]))
}

func allOwned(b *Board, side Side, squares []Square) bool {
	for _, sq := range squares {
		if !owns(b, rel(side, sq), side) {
			return false
		}
	}
	return true
}

func hole(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if b.Get(sq) != Empty {
			continue
		}
		var n = 0
		for dir := Direction(0); dir < DirectionCount; dir++ {
			if owns(b, Neighbour(sq, dir), side) {
				n++
			}
		}
		if n >= 3 {
			result++
		}
	}
	return result
}

func kingCenterControl(b *Board, side Side) float64 {
	var result float64
	for _, sq := range centerSquares {
		var p = b.Get(rel(side, sq))
		if p.IsKing() && p.Belongs(side) {
			result++
		}
	}
	return result
}

// stepTargets marks the squares reachable by a non-capturing move of side.
func stepTargets(b *Board, side Side) (result [SquareCount + 1]bool) {
	for _, m := range GenerateSteps(b, side) {
		result[m.To] = true
	}
	return
}

func mobility(b *Board, side Side) float64 {
	var reachable = stepTargets(b, side)
	var result float64
	for _, ok := range reachable {
		if ok {
			result++
		}
	}
	return result
}

func undeniedMobility(b *Board, side Side) float64 {
	return mobility(b, side) - denial(b, side)
}

func moveSystem(b *Board, side Side) float64 {
	var own, opp = material(b, side), material(b, side.Opposite())
	if own != opp || own+opp >= 24 {
		return 0
	}
	var files [8]bool
	for _, sq := range moveSystemSquares {
		files[rel(side, sq).Coord().Col] = true
	}
	var n = 0
	for sq := Square(1); sq <= SquareCount; sq++ {
		if b.Get(sq) != Empty && files[sq.Coord().Col] {
			n++
		}
	}
	return boolToFloat(n%2 == 1)
}

func node(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		if !owns(b, sq, side) {
			continue
		}
		var n = 0
		for dir := Direction(0); dir < DirectionCount; dir++ {
			if isEmpty(b, Neighbour(sq, dir)) {
				n++
			}
		}
		if n >= 3 {
			result++
		}
	}
	return result
}

func triangleOfOreo(b *Board, side Side) float64 {
	if b.CountKings(side.Opposite()) != 0 {
		return 0
	}
	return boolToFloat(allOwned(b, side, oreoSquares[:]))
}

func pole(b *Board, side Side) float64 {
	var result float64
	for sq := Square(1); sq <= SquareCount; sq++ {
		var p = b.Get(sq)
		if !p.IsMan() || !p.Belongs(side) {
			continue
		}
		var surrounded = true
		for dir := Direction(0); dir < DirectionCount; dir++ {
			var n = Neighbour(sq, dir)
			if n != SquareNone && b.Get(n) != Empty {
				surrounded = false
				break
			}
		}
		if surrounded {
			result++
		}
	}
	return result
}

func threat(b *Board, side Side) float64 {
	var counted [SquareCount + 1]bool
	var result float64
	for _, m := range GenerateSteps(b, side) {
		if counted[m.To] || len(attackedPieces(&m.Next.Board, m.To)) == 0 {
			continue
		}
		counted[m.To] = true
		result++
	}
	return result
}
