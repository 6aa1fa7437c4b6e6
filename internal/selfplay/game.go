package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
)

var ErrIllegalMove = errors.New("selfplay: engine returned an illegal move")

type Result int

const (
	ResultDraw Result = iota
	ResultWhiteWins
	ResultBlackWins
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	}
	return "1/2-1/2"
}

// Outcome is +1 for a white win, -1 for a black win and 0 for a draw.
func (r Result) Outcome() float64 {
	switch r {
	case ResultWhiteWins:
		return 1
	case ResultBlackWins:
		return -1
	}
	return 0
}

type IEngine interface {
	Search(ctx context.Context, params engine.SearchParams) (engine.SearchInfo, error)
}

type Options struct {
	Depth    int
	MaxMoves int
	// AvoidRepetition keeps the engine out of already visited positions while
	// another move exists.
	AvoidRepetition bool
	// OpeningPlies are played at random with Rng before the engine takes over.
	OpeningPlies int
	Rng          *rand.Rand
	Start        *common.Position
	// OnPly is called after every ply; a non-nil error ends the game.
	OnPly func(before *common.Position, move common.Move) error
}

func NewOptions() Options {
	return Options{
		Depth:    3,
		MaxMoves: 100,
	}
}

// Game holds every position of a finished game, the start included, so
// len(Positions) == len(Moves)+1. Each jump of a chain is a separate ply.
type Game struct {
	Positions []common.Position
	Moves     []common.Move
	Result    Result
	Truncated bool
	Comment   string
}

func (g *Game) Last() *common.Position {
	return &g.Positions[len(g.Positions)-1]
}

// Play runs one game of eng against itself. A game reaching MaxMoves plies is a
// truncated draw. On error the partial game is returned.
func Play(ctx context.Context, eng IEngine, options Options) (Game, error) {
	var start = common.NewInitialPosition()
	if options.Start != nil {
		start = *options.Start
	}
	var game = Game{
		Positions: []common.Position{start},
	}
	var history = make(common.History)
	history.Add(&start)

	for ply := 0; ; ply++ {
		if err := ctx.Err(); err != nil {
			return game, err
		}
		var cur = game.Last()
		var ml = cur.GenerateMoves()
		if len(ml) == 0 {
			if cur.Side == common.White {
				game.Result = ResultBlackWins
			} else {
				game.Result = ResultWhiteWins
			}
			game.Comment = fmt.Sprintf("%v has no moves", cur.Side)
			return game, nil
		}
		if options.MaxMoves > 0 && ply >= options.MaxMoves {
			game.Result = ResultDraw
			game.Truncated = true
			game.Comment = fmt.Sprintf("truncated after %d plies", ply)
			return game, nil
		}

		var move, err = chooseMove(ctx, eng, cur, ml, ply, history, &options)
		if err != nil {
			return game, err
		}
		var before = *cur
		game.Moves = append(game.Moves, move)
		game.Positions = append(game.Positions, move.Next)
		history.Add(&move.Next)
		if options.OnPly != nil {
			if err := options.OnPly(&before, move); err != nil {
				return game, err
			}
		}
	}
}

func chooseMove(ctx context.Context, eng IEngine, p *common.Position, ml []common.Move,
	ply int, history common.History, options *Options) (common.Move, error) {
	if ply < options.OpeningPlies && options.Rng != nil {
		return ml[options.Rng.Intn(len(ml))], nil
	}
	if options.AvoidRepetition {
		ml = common.FilterRepetitions(ml, history)
	}
	if len(ml) == 1 {
		return ml[0], nil
	}
	var si, err = eng.Search(ctx, engine.SearchParams{
		Position: *p,
		Moves:    ml,
		Limits:   engine.LimitsType{Depth: options.Depth},
	})
	if err != nil {
		return common.Move{}, err
	}
	var move, found = p.FindMove(si.Move.From, si.Move.To)
	if !found {
		return common.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, si.Move)
	}
	return move, nil
}
