package engine

import (
	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

// searchRoot scores every move from the point of view of the side to move and returns
// the index of the first best one. Depth 0 and 1 both compare static scores of the
// resulting positions.
func (e *Engine) searchRoot(p *Position, ml []Move, depth int) (int, float64) {
	const height = 1
	var side = p.Side
	var childDepth = Max(depth-1, 0)
	var bestIndex = 0
	var best = -valueInfinity
	for i := range ml {
		var child = &ml[i].Next
		var score = e.alphaBeta(child, childDepth, height, best, valueInfinity, child.Side == side)
		if score > best || i == 0 {
			best = score
			bestIndex = i
		}
	}
	return bestIndex, best
}

// main search method
func (e *Engine) alphaBeta(p *Position, depth, height int, alpha, beta float64, maximizing bool) float64 {
	e.incNodes()
	var perspective = p.Side
	if !maximizing {
		perspective = p.Side.Opposite()
	}
	if !p.HasMoves() {
		if maximizing {
			return lossIn(height)
		}
		return winIn(height)
	}
	if depth <= 0 || height >= maxHeight {
		return e.evaluator.Score(&p.Board, perspective)
	}

	var ml [MaxMoves]Move
	var moves = p.AppendMoves(ml[:0])
	if maximizing {
		var best = -valueInfinity
		for i := range moves {
			var child = &moves[i].Next
			var score = e.alphaBeta(child, depth-1, height+1, alpha, beta, child.Side == perspective)
			best = Max(best, score)
			alpha = Max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}
	var best = valueInfinity
	for i := range moves {
		var child = &moves[i].Next
		var score = e.alphaBeta(child, depth-1, height+1, alpha, beta, child.Side == perspective)
		best = Min(best, score)
		beta = Min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// Minimax is the plain minimax value of p without pruning, with the same conventions
// as Evaluate. It exists to cross-check the pruned search.
func (e *Engine) Minimax(p *Position, depth int, maximizing bool) float64 {
	return e.minimax(p, depth, 0, maximizing)
}

func (e *Engine) minimax(p *Position, depth, height int, maximizing bool) float64 {
	var perspective = p.Side
	if !maximizing {
		perspective = p.Side.Opposite()
	}
	var moves = p.GenerateMoves()
	if len(moves) == 0 {
		if maximizing {
			return lossIn(height)
		}
		return winIn(height)
	}
	if depth <= 0 || height >= maxHeight {
		return e.evaluator.Score(&p.Board, perspective)
	}
	var best = valueInfinity
	if maximizing {
		best = -valueInfinity
	}
	for i := range moves {
		var child = &moves[i].Next
		var score = e.minimax(child, depth-1, height+1, child.Side == perspective)
		if maximizing {
			best = Max(best, score)
		} else {
			best = Min(best, score)
		}
	}
	return best
}
