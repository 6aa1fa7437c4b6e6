package trainer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChizhovVadim/CheckersGo/internal/selfplay"
	"github.com/ChizhovVadim/CheckersGo/pkg/common"
)

var ErrUnknownPolicy = errors.New("trainer: unknown policy")

// Policy selects how weights follow the self-play signal.
type Policy int

const (
	// PolicyTD nudges every active weight after each ply by the clipped change
	// of the mover's score.
	PolicyTD Policy = iota
	// PolicyOutcome fits every recorded position of a decided game to its result.
	PolicyOutcome
)

func (p Policy) String() string {
	switch p {
	case PolicyTD:
		return "td"
	case PolicyOutcome:
		return "outcome"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "td":
		return PolicyTD, nil
	case "outcome":
		return PolicyOutcome, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

type Options struct {
	Policy          Policy
	Depth           int
	MaxMoves        int
	LearningRate    float64
	DeltaLimit      float64
	MinWeight       float64
	MaxWeight       float64
	TallyLimit      int
	ReportInterval  int
	OpeningPlies    int
	AvoidRepetition bool
	Seed            int64
	OnPly           func(p *common.Position)
	OnGame          func(r GameReport)
}

type GameReport struct {
	Game      int
	Result    selfplay.Result
	Truncated bool
	Plies     int
	// Signal is the TD delta per ply or the error per position.
	SignalMean float64
	SignalStd  float64
	Rotations  int
}

// NewOptions returns the defaults of a policy.
func NewOptions(policy Policy) Options {
	var result = Options{
		Policy:         policy,
		Depth:          3,
		MaxMoves:       100,
		LearningRate:   0.1,
		DeltaLimit:     1,
		MinWeight:      -10,
		MaxWeight:      10,
		TallyLimit:     8,
		ReportInterval: 100,
		OpeningPlies:   2,
		Seed:           1,
	}
	if policy == PolicyOutcome {
		result.MinWeight = -0.5
	}
	return result
}
