package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

var (
	ErrNegativeDepth = errors.New("engine: negative search depth")
	ErrNoMoves       = errors.New("engine: no legal moves")
	ErrSearchStopped = errors.New("engine: search stopped")

	errSearchTimeout = errors.New("search timeout")
)

// Engine is a fixed-depth minimax searcher with alpha-beta pruning. An Engine is not
// safe for concurrent use; the evaluator is only read.
type Engine struct {
	Options     Options
	evaluator   Evaluator
	timeManager *simpleTimeManager
	nodes       int64
}

func NewEngine(evaluator Evaluator) *Engine {
	if evaluator == nil {
		panic("engine: nil evaluator")
	}
	return &Engine{
		Options:   NewOptions(),
		evaluator: evaluator,
	}
}

func (e *Engine) Evaluator() Evaluator {
	return e.evaluator
}

// Evaluate returns the alpha-beta value of p searched depth plies deep. The value is
// from the point of view of p.Side when maximizing and of its opponent otherwise.
func (e *Engine) Evaluate(p *Position, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	e.nodes = 0
	e.timeManager = nil
	return e.alphaBeta(p, depth, 0, alpha, beta, maximizing), nil
}

// BestMove searches every move of p depth plies deep and returns the first move with
// the best score. ok is false when p has no legal moves.
func (e *Engine) BestMove(p *Position, depth int) (move Move, ok bool, err error) {
	if depth < 0 {
		return Move{}, false, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	e.nodes = 0
	e.timeManager = nil
	var ml = p.GenerateMoves()
	if len(ml) == 0 {
		return Move{}, false, nil
	}
	var index, _ = e.searchRoot(p, ml, depth)
	return ml[index], true, nil
}

// Search deepens iteratively up to the depth limit and reports the last completed
// iteration. It stops early on the time and node limits; cancellation of ctx before
// the first iteration completes is an error.
func (e *Engine) Search(ctx context.Context, params SearchParams) (SearchInfo, error) {
	var start = time.Now()
	var limits = params.Limits
	if limits.Depth == 0 {
		limits.Depth = e.Options.Depth
	}
	if limits.Depth < 0 {
		return SearchInfo{}, fmt.Errorf("%w: %d", ErrNegativeDepth, limits.Depth)
	}
	var p = &params.Position
	var ml = params.Moves
	if len(ml) == 0 {
		ml = p.GenerateMoves()
	}
	if len(ml) == 0 {
		return SearchInfo{}, ErrNoMoves
	}

	e.timeManager = newSimpleTimeManager(ctx, start, limits)
	defer func() {
		e.timeManager.Close()
		e.timeManager = nil
	}()
	e.nodes = 0

	var result SearchInfo
	var completed = false
	for depth := Min(1, limits.Depth); depth <= limits.Depth; depth++ {
		if e.timeManager.IsDone() {
			break
		}
		var index, score, ok = e.searchIteration(p, ml, depth)
		if !ok {
			break
		}
		completed = true
		result = SearchInfo{
			Move:  ml[index],
			Score: score,
			Depth: depth,
			Nodes: e.nodes,
			Time:  time.Since(start),
		}
		if params.Progress != nil && e.nodes >= e.Options.ProgressMinNodes {
			params.Progress(result)
		}
	}
	if !completed {
		if err := ctx.Err(); err != nil {
			return SearchInfo{}, fmt.Errorf("%w: %w", ErrSearchStopped, err)
		}
		// limits too tight for a single iteration
		result = SearchInfo{Move: ml[0], Nodes: e.nodes, Time: time.Since(start)}
	}
	return result, nil
}

func (e *Engine) searchIteration(p *Position, ml []Move, depth int) (index int, score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				ok = false
				return
			}
			panic(r)
		}
	}()
	index, score = e.searchRoot(p, ml, depth)
	return index, score, true
}

func (e *Engine) incNodes() {
	e.nodes++
	if e.nodes&255 == 0 && e.timeManager != nil {
		e.timeManager.OnNodesChanged(e.nodes)
		if e.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

func (e *Engine) Nodes() int64 {
	return e.nodes
}
