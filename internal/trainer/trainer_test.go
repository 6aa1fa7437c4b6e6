package trainer

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/CheckersGo/internal/selfplay"
	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

func quickOptions(policy Policy, seed int64) Options {
	var options = NewOptions(policy)
	options.Depth = 1
	options.MaxMoves = 40
	options.Seed = seed
	return options
}

func checkPartition(t *testing.T, e *eval.Evaluator) {
	t.Helper()
	var active, reserve = e.Active(), e.Reserve()
	require.Len(t, active, eval.DefaultActiveSize)
	require.Len(t, reserve, e.FeatureCount()-eval.DefaultActiveSize)
	var seen = make(map[int]bool)
	for _, i := range append(active, reserve...) {
		require.False(t, seen[i], "feature %d listed twice", i)
		seen[i] = true
	}
}

func TestLearnIsDeterministic(t *testing.T) {
	var run = func() *eval.Evaluator {
		var e = eval.NewDefaultEvaluator(nil)
		var options = quickOptions(PolicyTD, 5)
		options.OnGame = func(r GameReport) {
			checkPartition(t, e)
		}
		var tr = NewTrainer(e, options, nil)
		tr.RandomizeWeights()
		require.NoError(t, tr.Learn(context.Background(), 50))
		return e
	}
	var a, b = run(), run()
	require.Equal(t, a.Weights(), b.Weights())
	require.Equal(t, a.Active(), b.Active())
	require.Equal(t, a.Reserve(), b.Reserve())
}

func TestTDKeepsWeightsInRange(t *testing.T) {
	var e = eval.NewDefaultEvaluator(nil)
	var options = quickOptions(PolicyTD, 1)
	var plies, games = 0, 0
	options.OnPly = func(p *common.Position) {
		plies++
	}
	options.OnGame = func(r GameReport) {
		games++
		require.Equal(t, games, r.Game)
		require.LessOrEqual(t, r.Plies, options.MaxMoves)
		require.LessOrEqual(t, r.SignalMean, options.DeltaLimit)
		require.GreaterOrEqual(t, r.SignalMean, -options.DeltaLimit)
	}
	var tr = NewTrainer(e, options, nil)
	require.NoError(t, tr.Learn(context.Background(), 5))
	require.Equal(t, 5, games)
	require.Greater(t, plies, 0)
	for _, w := range e.Weights() {
		require.LessOrEqual(t, w, options.MaxWeight)
		require.GreaterOrEqual(t, w, options.MinWeight)
	}
	var total = 0
	for _, n := range tr.Usage() {
		total += n
	}
	require.Equal(t, plies*eval.DefaultActiveSize, total)
	checkPartition(t, e)
}

func TestRotationBenchesPersistentMinimum(t *testing.T) {
	var e = eval.NewDefaultEvaluator(nil)
	var options = quickOptions(PolicyTD, 1)
	options.TallyLimit = 3
	var tr = NewTrainer(e, options, nil)
	// feature 0 stays the minimum for every round
	e.SetWeight(0, -1)
	for i := 0; i < 2; i++ {
		tr.endRound()
	}
	require.True(t, e.IsActive(0))
	tr.endRound()
	require.False(t, e.IsActive(0))
	require.Equal(t, eval.DefaultActiveSize, e.Active()[0])
	require.Equal(t, 0.0, e.Weight(eval.DefaultActiveSize))
	require.Equal(t, 1, tr.Rotations())
	var reserve = e.Reserve()
	require.Equal(t, 0, reserve[len(reserve)-1])
}

func TestOutcomePolicyKeepsWeightsInRange(t *testing.T) {
	var e = eval.NewDefaultEvaluator(nil)
	var options = quickOptions(PolicyOutcome, 3)
	var tr = NewTrainer(e, options, nil)
	tr.RandomizeWeights()
	require.NoError(t, tr.Learn(context.Background(), 5))
	for _, w := range e.Weights() {
		require.LessOrEqual(t, w, options.MaxWeight)
		require.GreaterOrEqual(t, w, -0.5)
	}
	checkPartition(t, e)
}

// squareSum adds up the square ids of the pieces of side, so every step changes it.
func squareSum(b *common.Board, side common.Side) float64 {
	var sum = 0
	for sq, p := range b {
		if p.Belongs(side) {
			sum += sq
		}
	}
	return float64(sum)
}

func constant(v float64) eval.FeatureFunc {
	return func(b *common.Board, side common.Side) float64 {
		return v
	}
}

// newSmallEvaluator has the first two features active and the rest in reserve.
func newSmallEvaluator(t *testing.T, fns ...eval.FeatureFunc) *eval.Evaluator {
	t.Helper()
	var features []eval.Feature
	for i, fn := range fns {
		features = append(features, eval.Feature{Tag: fmt.Sprintf("F%d", i), Fn: fn})
	}
	var e, err = eval.NewEvaluator(features, 2, nil)
	require.NoError(t, err)
	return e
}

func TestTDStepMovesActiveWeightsByClippedDelta(t *testing.T) {
	var p = common.NewInitialPosition()
	var move = p.GenerateMoves()[0]
	var step = float64(move.To - move.From)

	var tests = []struct {
		name    string
		w0      float64
		clipped bool
	}{
		{"small", 0.01, false},
		{"clipped", 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var e = newSmallEvaluator(t, squareSum, constant(1), constant(1))
			e.SetWeight(0, test.w0)
			e.SetWeight(1, 0.5)
			e.SetWeight(2, 0.7)
			var options = NewOptions(PolicyTD)
			var tr = NewTrainer(e, options, nil)

			require.NoError(t, tr.onPly(&p, move))

			var delta = common.Clamp(test.w0*step, -options.DeltaLimit, options.DeltaLimit)
			if test.clipped {
				require.Equal(t, options.DeltaLimit, math.Abs(delta))
			} else {
				require.Less(t, math.Abs(delta), options.DeltaLimit)
			}
			require.InDeltaSlice(t, []float64{delta}, tr.signal, 1e-12)
			require.InDelta(t, test.w0+options.LearningRate*delta, e.Weight(0), 1e-12)
			require.InDelta(t, 0.5+options.LearningRate*delta, e.Weight(1), 1e-12)
			require.Equal(t, 0.7, e.Weight(2))
		})
	}
}

func TestOutcomeUpdate(t *testing.T) {
	var p = common.NewInitialPosition()
	var e = newSmallEvaluator(t, constant(1), constant(2), constant(3))
	e.SetWeight(0, 0.1)
	e.SetWeight(1, 0.2)
	e.SetWeight(2, 0.7)
	var tr = NewTrainer(e, NewOptions(PolicyOutcome), nil)

	tr.fitOutcome(&selfplay.Game{
		Positions: []common.Position{p, p},
		Result:    selfplay.ResultWhiteWins,
	})

	// first position: score 0.5, error 0.5; second: score 0.75, error 0.25
	require.InDeltaSlice(t, []float64{0.5, 0.25}, tr.signal, 1e-12)
	require.InDelta(t, 0.175, e.Weight(0), 1e-12)
	require.InDelta(t, 0.35, e.Weight(1), 1e-12)
	require.Equal(t, 0.7, e.Weight(2))
}

func TestOutcomeUpdateIsClipped(t *testing.T) {
	var p = common.NewInitialPosition()
	var tests = []struct {
		result   selfplay.Result
		expected float64
	}{
		{selfplay.ResultBlackWins, -0.5},
		{selfplay.ResultWhiteWins, 10},
	}
	for _, test := range tests {
		t.Run(test.result.String(), func(t *testing.T) {
			var e = newSmallEvaluator(t, constant(1), constant(2), constant(3))
			var options = NewOptions(PolicyOutcome)
			options.LearningRate = 100
			var tr = NewTrainer(e, options, nil)
			tr.fitOutcome(&selfplay.Game{
				Positions: []common.Position{p},
				Result:    test.result,
			})
			require.Equal(t, test.expected, e.Weight(0))
			require.Equal(t, test.expected, e.Weight(1))
		})
	}
}

func TestTruncatedGameIsSkipped(t *testing.T) {
	var p = common.NewInitialPosition()
	var e = newSmallEvaluator(t, constant(1), constant(2), constant(3))
	e.SetWeight(0, 0.1)
	e.SetWeight(1, 0.2)
	var tr = NewTrainer(e, NewOptions(PolicyOutcome), nil)
	var game = selfplay.Game{
		Positions: []common.Position{p, p},
		Result:    selfplay.ResultDraw,
		Truncated: true,
	}

	tr.fitGame(&game)
	require.Equal(t, []float64{0.1, 0.2, 0}, e.Weights())
	require.Equal(t, 0, tr.rounds)

	game.Truncated = false
	tr.fitGame(&game)
	require.NotEqual(t, []float64{0.1, 0.2, 0}, e.Weights())
	require.Equal(t, 1, tr.rounds)
}

func TestLearnStopsOnCancel(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var e = eval.NewDefaultEvaluator(nil)
	var options = quickOptions(PolicyTD, 1)
	var games = 0
	options.OnGame = func(r GameReport) {
		games++
		cancel()
	}
	var err = NewTrainer(e, options, nil).Learn(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, games)
}

func TestParsePolicy(t *testing.T) {
	var p, err = ParsePolicy("TD")
	require.NoError(t, err)
	require.Equal(t, PolicyTD, p)
	p, err = ParsePolicy("outcome")
	require.NoError(t, err)
	require.Equal(t, PolicyOutcome, p)
	_, err = ParsePolicy("sgd")
	require.ErrorIs(t, err, ErrUnknownPolicy)
}
