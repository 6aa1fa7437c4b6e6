package eval

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"

	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

const (
	maxFeatures = 64

	RandomWeightRange = 0.05
)

var (
	ErrActiveSize   = errors.New("eval: bad active size")
	ErrUnknownTag   = errors.New("eval: unknown feature tag")
	ErrDuplicateTag = errors.New("eval: duplicate feature tag")
)

// Evaluator is a linear evaluation over a feature list. Only the first ActiveSize
// positions of the partition are scored; the rest wait in a reserve queue.
type Evaluator struct {
	features []Feature
	weights  []float64
	active   []int
	reserve  []int
	logger   *log.Logger
	failures []sync.Once
}

func NewEvaluator(features []Feature, activeSize int, logger *log.Logger) (*Evaluator, error) {
	if len(features) > maxFeatures {
		return nil, fmt.Errorf("eval: %d features, limit %d", len(features), maxFeatures)
	}
	if activeSize <= 0 || activeSize > len(features) {
		return nil, fmt.Errorf("%w: %d of %d", ErrActiveSize, activeSize, len(features))
	}
	var seen = make(map[string]bool, len(features))
	for _, f := range features {
		if seen[f.Tag] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateTag, f.Tag)
		}
		seen[f.Tag] = true
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var e = &Evaluator{
		features: append([]Feature(nil), features...),
		weights:  make([]float64, len(features)),
		active:   make([]int, activeSize),
		reserve:  make([]int, len(features)-activeSize),
		logger:   logger,
		failures: make([]sync.Once, len(features)),
	}
	e.Reset()
	return e, nil
}

// NewDefaultEvaluator uses the registered features with DefaultActiveSize of them active.
func NewDefaultEvaluator(logger *log.Logger) *Evaluator {
	var e, err = NewEvaluator(features, DefaultActiveSize, logger)
	if err != nil {
		panic(err)
	}
	return e
}

// Score sums weight times value over the active features.
func (e *Evaluator) Score(b *Board, side Side) float64 {
	var w, v [maxFeatures]float64
	for i, index := range e.active {
		w[i] = e.weights[index]
		v[i] = e.FeatureValue(index, b, side)
	}
	var n = len(e.active)
	return floats.Dot(w[:n], v[:n])
}

// FeatureValue evaluates one feature. A panicking or non-finite feature scores 0;
// the first failure of each feature is logged.
func (e *Evaluator) FeatureValue(index int, b *Board, side Side) (result float64) {
	var f = &e.features[index]
	defer func() {
		if r := recover(); r != nil {
			e.failures[index].Do(func() {
				e.logger.Printf("eval: feature %v failed: %v", f.Tag, r)
			})
			result = 0
		}
	}()
	result = f.Fn(b, side)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		e.failures[index].Do(func() {
			e.logger.Printf("eval: feature %v returned %v", f.Tag, result)
		})
		result = 0
	}
	return result
}

// ActiveValues appends the values of the active features, in Active order, to dst.
func (e *Evaluator) ActiveValues(dst []float64, b *Board, side Side) []float64 {
	for _, index := range e.active {
		dst = append(dst, e.FeatureValue(index, b, side))
	}
	return dst
}

func (e *Evaluator) Features() []Feature {
	return append([]Feature(nil), e.features...)
}

func (e *Evaluator) FeatureCount() int {
	return len(e.features)
}

func (e *Evaluator) Feature(index int) Feature {
	return e.features[index]
}

func (e *Evaluator) Index(tag string) (int, bool) {
	for i := range e.features {
		if e.features[i].Tag == tag {
			return i, true
		}
	}
	return -1, false
}

func (e *Evaluator) Weights() []float64 {
	return append([]float64(nil), e.weights...)
}

func (e *Evaluator) Weight(index int) float64 {
	return e.weights[index]
}

func (e *Evaluator) SetWeight(index int, w float64) {
	e.weights[index] = w
}

func (e *Evaluator) ActiveSize() int {
	return len(e.active)
}

// Active returns feature indexes of the active set.
func (e *Evaluator) Active() []int {
	return append([]int(nil), e.active...)
}

// Reserve returns feature indexes of the reserve queue, longest waiting first.
func (e *Evaluator) Reserve() []int {
	return append([]int(nil), e.reserve...)
}

func (e *Evaluator) IsActive(index int) bool {
	for _, i := range e.active {
		if i == index {
			return true
		}
	}
	return false
}

// ActiveWeights appends the weights of the active features to dst.
func (e *Evaluator) ActiveWeights(dst []float64) []float64 {
	for _, index := range e.active {
		dst = append(dst, e.weights[index])
	}
	return dst
}

// Rotate benches the feature at position pos of the active set to the back of the
// reserve queue and promotes the head of the queue into its place with weight 0.
func (e *Evaluator) Rotate(pos int) (benched, promoted int, ok bool) {
	if len(e.reserve) == 0 {
		return -1, -1, false
	}
	benched = e.active[pos]
	promoted = e.reserve[0]
	copy(e.reserve, e.reserve[1:])
	e.reserve[len(e.reserve)-1] = benched
	e.active[pos] = promoted
	e.weights[promoted] = 0
	return benched, promoted, true
}

// Reset restores default weights and the initial partition.
func (e *Evaluator) Reset() {
	for i := range e.features {
		e.weights[i] = e.features[i].DefaultWeight
	}
	for i := range e.active {
		e.active[i] = i
	}
	for i := range e.reserve {
		e.reserve[i] = len(e.active) + i
	}
}

// Randomize draws every weight uniformly from [-RandomWeightRange, RandomWeightRange].
func (e *Evaluator) Randomize(rng *rand.Rand) {
	for i := range e.weights {
		e.weights[i] = (2*rng.Float64() - 1) * RandomWeightRange
	}
}

// SetActive makes the tagged features active in the given order; the others go to
// the reserve queue in registration order.
func (e *Evaluator) SetActive(tags []string) error {
	if len(tags) != len(e.active) {
		return fmt.Errorf("%w: %d tags for %d slots", ErrActiveSize, len(tags), len(e.active))
	}
	var active = make([]int, 0, len(tags))
	var used = make([]bool, len(e.features))
	for _, tag := range tags {
		var index, ok = e.Index(tag)
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownTag, tag)
		}
		if used[index] {
			return fmt.Errorf("%w: %v", ErrDuplicateTag, tag)
		}
		used[index] = true
		active = append(active, index)
	}
	e.reserve = e.reserve[:0]
	for i := range e.features {
		if !used[i] {
			e.reserve = append(e.reserve, i)
		}
	}
	copy(e.active, active)
	return nil
}

// Clone returns an independent copy sharing only the immutable feature functions.
func (e *Evaluator) Clone() *Evaluator {
	return &Evaluator{
		features: e.features,
		weights:  append([]float64(nil), e.weights...),
		active:   append([]int(nil), e.active...),
		reserve:  append([]int(nil), e.reserve...),
		logger:   e.logger,
		failures: make([]sync.Once, len(e.features)),
	}
}
