// Package agent bundles the move generator, the evaluator, the search engine and
// the trainer behind one object.
package agent

import (
	"context"
	"io"
	"log"

	"github.com/ChizhovVadim/CheckersGo/internal/trainer"
	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

type Options struct {
	// Depth is the search depth of BestMove.
	Depth   int
	Trainer trainer.Options
	Logger  *log.Logger
}

func NewOptions() Options {
	return Options{
		Depth:   3,
		Trainer: trainer.NewOptions(trainer.PolicyTD),
	}
}

// Agent is not safe for concurrent use.
type Agent struct {
	depth     int
	evaluator *eval.Evaluator
	engine    *engine.Engine
	trainer   *trainer.Trainer
	progress  func(p *common.Position)
}

func New(options Options) *Agent {
	var logger = options.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var a = &Agent{
		depth:     options.Depth,
		evaluator: eval.NewDefaultEvaluator(logger),
	}
	a.engine = engine.NewEngine(a.evaluator)
	var trainerOptions = options.Trainer
	var onPly = trainerOptions.OnPly
	trainerOptions.OnPly = func(p *common.Position) {
		if onPly != nil {
			onPly(p)
		}
		if a.progress != nil {
			a.progress(p)
		}
	}
	a.trainer = trainer.NewTrainer(a.evaluator, trainerOptions, logger)
	return a
}

func (a *Agent) Evaluator() *eval.Evaluator {
	return a.evaluator
}

func (a *Agent) InitialPosition() common.Position {
	return common.NewInitialPosition()
}

func (a *Agent) ListValidMoves(p *common.Position) []common.Move {
	return p.GenerateMoves()
}

// CheckWinCondition returns the winner once the side to move has no legal moves.
func (a *Agent) CheckWinCondition(p *common.Position) (common.Side, bool) {
	return p.Winner()
}

func (a *Agent) ComputeScore(b *common.Board, side common.Side) float64 {
	return a.evaluator.Score(b, side)
}

// BestMove searches at the configured depth; ok is false when there is no move.
func (a *Agent) BestMove(p *common.Position) (move common.Move, ok bool, err error) {
	return a.engine.BestMove(p, a.depth)
}

func (a *Agent) ResetWeights() {
	a.evaluator.Reset()
}

func (a *Agent) RandomizeWeights() {
	a.trainer.RandomizeWeights()
}

// Learn trains on n self-play games; onProgress, when set, sees every position played.
func (a *Agent) Learn(ctx context.Context, n int, onProgress func(p *common.Position)) error {
	a.progress = onProgress
	defer func() { a.progress = nil }()
	return a.trainer.Learn(ctx, n)
}
