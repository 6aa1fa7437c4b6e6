package trainer

import (
	"context"
	"io"
	"log"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ChizhovVadim/CheckersGo/internal/selfplay"
	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

// Trainer adjusts the weights of an evaluator from games the engine plays against
// itself. It is the only writer of the evaluator's weights.
type Trainer struct {
	options   Options
	evaluator *eval.Evaluator
	engine    *engine.Engine
	rnd       *rand.Rand
	logger    *log.Logger

	streakFeature int
	streak        int
	rounds        int
	rotations     int
	usage         []int

	signal  []float64
	weights []float64
	values  []float64
}

func NewTrainer(evaluator *eval.Evaluator, options Options, logger *log.Logger) *Trainer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Trainer{
		options:       options,
		evaluator:     evaluator,
		engine:        engine.NewEngine(evaluator),
		rnd:           rand.New(rand.NewSource(options.Seed)),
		logger:        logger,
		streakFeature: -1,
		usage:         make([]int, evaluator.FeatureCount()),
	}
}

func (t *Trainer) Evaluator() *eval.Evaluator {
	return t.evaluator
}

// Usage returns how many evaluation rounds each feature spent in the active set.
func (t *Trainer) Usage() []int {
	return append([]int(nil), t.usage...)
}

func (t *Trainer) Rotations() int {
	return t.rotations
}

// RandomizeWeights draws fresh weights from the trainer's seeded source.
func (t *Trainer) RandomizeWeights() {
	t.evaluator.Randomize(t.rnd)
}

// Learn plays numGames self-play games and updates the weights after every ply or
// every game depending on the policy. Updates made before cancellation are kept.
func (t *Trainer) Learn(ctx context.Context, numGames int) error {
	t.logger.Printf("trainer: %d games, policy %v, depth %d", numGames, t.options.Policy, t.options.Depth)
	for i := 1; i <= numGames; i++ {
		var rotations = t.rotations
		t.signal = t.signal[:0]
		var game, err = selfplay.Play(ctx, t.engine, selfplay.Options{
			Depth:           t.options.Depth,
			MaxMoves:        t.options.MaxMoves,
			AvoidRepetition: t.options.AvoidRepetition,
			OpeningPlies:    t.options.OpeningPlies,
			Rng:             t.rnd,
			OnPly:           t.onPly,
		})
		if err != nil {
			return err
		}
		t.fitGame(&game)
		var report = GameReport{
			Game:      i,
			Result:    game.Result,
			Truncated: game.Truncated,
			Plies:     len(game.Moves),
			Rotations: t.rotations - rotations,
		}
		if len(t.signal) > 0 {
			report.SignalMean = stat.Mean(t.signal, nil)
		}
		if len(t.signal) > 1 {
			report.SignalStd = stat.StdDev(t.signal, nil)
		}
		t.logger.Printf("trainer: game %d %v (%d plies, %v) signal %.4f±%.4f",
			i, game.Result, report.Plies, game.Comment, report.SignalMean, report.SignalStd)
		if t.options.OnGame != nil {
			t.options.OnGame(report)
		}
	}
	t.logUsage()
	return nil
}

func (t *Trainer) onPly(before *common.Position, move common.Move) error {
	if t.options.OnPly != nil {
		t.options.OnPly(&move.Next)
	}
	if t.options.Policy != PolicyTD {
		return nil
	}
	var mover = before.Side
	var delta = t.evaluator.Score(&move.Next.Board, mover) - t.evaluator.Score(&before.Board, mover)
	delta = common.Clamp(delta, -t.options.DeltaLimit, t.options.DeltaLimit)
	t.signal = append(t.signal, delta)
	for _, index := range t.evaluator.Active() {
		t.setWeight(index, t.evaluator.Weight(index)+t.options.LearningRate*delta)
	}
	t.endRound()
	return nil
}

// fitGame applies the per-game update. Games stopped by the move cap carry no
// outcome and leave the weights alone.
func (t *Trainer) fitGame(game *selfplay.Game) {
	if t.options.Policy != PolicyOutcome || game.Truncated {
		return
	}
	t.fitOutcome(game)
	t.endRound()
}

// fitOutcome moves the score of every position of the game toward the result,
// from white's point of view.
func (t *Trainer) fitOutcome(game *selfplay.Game) {
	var outcome = game.Result.Outcome()
	var active = t.evaluator.Active()
	for i := range game.Positions {
		var b = &game.Positions[i].Board
		t.values = t.evaluator.ActiveValues(t.values[:0], b, common.White)
		t.weights = t.evaluator.ActiveWeights(t.weights[:0])
		var err = outcome - floats.Dot(t.weights, t.values)
		t.signal = append(t.signal, err)
		for j, index := range active {
			t.setWeight(index, t.weights[j]+t.options.LearningRate*err*t.values[j])
		}
	}
}

func (t *Trainer) setWeight(index int, w float64) {
	if math.IsNaN(w) {
		w = 0
	}
	t.evaluator.SetWeight(index, common.Clamp(w, t.options.MinWeight, t.options.MaxWeight))
}
