// Package uci drives the engine over a line protocol modelled on UCI:
// "position startpos moves 9-14 23-19", "go depth 6", "stop", "setoption name Depth value 4".
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
)

type Engine interface {
	Search(ctx context.Context, searchParams engine.SearchParams) (engine.SearchInfo, error)
}

type searchResult struct {
	info engine.SearchInfo
	err  error
	done bool
}

type Protocol struct {
	name         string
	version      string
	options      []Option
	engine       Engine
	out          io.Writer
	positions    []common.Position
	thinking     bool
	engineOutput chan searchResult
	cancel       context.CancelFunc

	// avoidRepetition keeps the engine off moves back into positions of the current game.
	avoidRepetition bool
}

func New(name, version string, engine Engine, options []Option) *Protocol {
	var uci = &Protocol{
		name:      name,
		version:   version,
		engine:    engine,
		positions: []common.Position{common.NewInitialPosition()},
	}
	uci.options = append(append([]Option(nil), options...),
		&BoolOption{Name: "AvoidRepetition", Value: &uci.avoidRepetition})
	return uci
}

// Run serves commands from in until "quit" or end of input. A running search is
// stopped and its best move reported before Run returns.
func (uci *Protocol) Run(logger *log.Logger, in io.Reader, out io.Writer) {
	uci.out = out
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(in, commands)
	}()

	var lastInfo engine.SearchInfo
	for {
		select {
		case r, ok := <-uci.engineOutput:
			if !ok {
				uci.thinking = false
				uci.cancel = nil
				uci.engineOutput = nil
				continue
			}
			if !r.done {
				fmt.Fprintln(out, searchInfoToUci(r.info))
				lastInfo = r.info
				continue
			}
			uci.printBestMove(logger, r, lastInfo)
			lastInfo = engine.SearchInfo{}
		case commandLine, ok := <-commands:
			if !ok {
				if uci.thinking {
					uci.cancel()
					for r := range uci.engineOutput {
						if r.done {
							uci.printBestMove(logger, r, lastInfo)
						}
					}
				}
				return
			}
			var err = uci.handle(commandLine)
			if err != nil {
				logger.Println(err)
			}
		}
	}
}

func (uci *Protocol) printBestMove(logger *log.Logger, r searchResult, lastInfo engine.SearchInfo) {
	if r.err != nil {
		logger.Println(r.err)
		if lastInfo.Depth == 0 {
			fmt.Fprintln(uci.out, "bestmove (none)")
			return
		}
		r.info = lastInfo
	}
	fmt.Fprintf(uci.out, "bestmove %v\n", r.info.Move)
}

func readCommands(in io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking {
		if commandName == "stop" {
			uci.cancel()
			return nil
		}
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "d":
		h = uci.displayCommand
	}

	if h == nil {
		return fmt.Errorf("command not found %v", commandName)
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.out, "id name %s %s\n", uci.name, uci.version)
	for _, option := range uci.options {
		fmt.Fprintln(uci.out, option.UciString())
	}
	fmt.Fprintln(uci.out, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	return errors.New("unhandled option")
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	fmt.Fprintln(uci.out, "readyok")
	return nil
}

func (uci *Protocol) displayCommand(fields []string) error {
	var p = &uci.positions[len(uci.positions)-1]
	fmt.Fprint(uci.out, p.Board.String())
	fmt.Fprintln(uci.out, p.FEN())
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("unknown position command")
	}
	var args = fields
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFEN
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], "")
		} else {
			fen = strings.Join(args[1:movesIndex], "")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []common.Position{p}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			var newPos, ok = makeMove(&positions[len(positions)-1], smove)
			if !ok {
				return fmt.Errorf("parse move failed %v", smove)
			}
			positions = append(positions, newPos)
		}
	}
	uci.positions = positions
	return nil
}

func makeMove(p *common.Position, smove string) (common.Position, bool) {
	var fields = strings.FieldsFunc(smove, func(r rune) bool {
		return r == '-' || r == 'x'
	})
	if len(fields) != 2 {
		return common.Position{}, false
	}
	var from, err1 = common.ParseSquare(fields[0])
	var to, err2 = common.ParseSquare(fields[1])
	if err1 != nil || err2 != nil {
		return common.Position{}, false
	}
	var move, ok = p.FindMove(from, to)
	if !ok {
		return common.Position{}, false
	}
	return move.Next, true
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	uci.thinking = true
	uci.engineOutput = make(chan searchResult, 3)
	var position = uci.positions[len(uci.positions)-1]
	var moves = uci.rootMoves(&position)
	go func() {
		defer cancel()
		var si, err = uci.engine.Search(ctx, engine.SearchParams{
			Position: position,
			Moves:    moves,
			Limits:   limits,
			Progress: func(si engine.SearchInfo) {
				select {
				case uci.engineOutput <- searchResult{info: si}:
				default:
				}
			},
		})
		uci.engineOutput <- searchResult{info: si, err: err, done: true}
		close(uci.engineOutput)
	}()
	return nil
}

// rootMoves returns nil (every legal move) unless repetitions are avoided.
func (uci *Protocol) rootMoves(p *common.Position) []common.Move {
	if !uci.avoidRepetition {
		return nil
	}
	var history = make(common.History)
	for i := range uci.positions {
		history.Add(&uci.positions[i])
	}
	return common.FilterRepetitions(p.GenerateMoves(), history)
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.positions = []common.Position{common.NewInitialPosition()}
	return nil
}

func searchInfoToUci(si engine.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, engine.FormatScore(si.Score))
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v pv %v", si.Nodes, timeMs, nps, si.Move)
	return sb.String()
}

func parseLimits(args []string) (result engine.LimitsType) {
	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "depth":
			result.Depth, _ = strconv.Atoi(args[i+1])
			i++
		case "nodes":
			result.Nodes, _ = strconv.ParseInt(args[i+1], 10, 64)
			i++
		case "movetime":
			var ms, _ = strconv.Atoi(args[i+1])
			result.MoveTime = time.Duration(ms) * time.Millisecond
			i++
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
