package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
)

var ErrBadMove = errors.New("bad move")

type IEngine interface {
	Search(ctx context.Context, params engine.SearchParams) (engine.SearchInfo, error)
}

type Options struct {
	HumanSide common.Side
	Depth     int
	Colors    bool
}

// PlayCli plays a console game. The human enters one jump at a time as "9-14" or
// "15x22"; "quit" ends the game.
func PlayCli(ctx context.Context, eng IEngine, in io.Reader, out io.Writer, options Options) error {
	var game = newGame()
	var scanner = bufio.NewScanner(in)
	for {
		var cur = game.current()
		game.Print(out, options.Colors)
		if winner, ok := cur.Winner(); ok {
			fmt.Fprintf(out, "%v wins\n", winner)
			return nil
		}
		if cur.Side != options.HumanSide {
			var si, err = eng.Search(ctx, engine.SearchParams{
				Position: *cur,
				Limits:   engine.LimitsType{Depth: options.Depth},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "engine: %v (%v)\n", si.Move, engine.FormatScore(si.Score))
			if !game.MakeMove(si.Move.From, si.Move.To) {
				return fmt.Errorf("%w %v", ErrBadMove, si.Move)
			}
			continue
		}
		fmt.Fprintf(out, "%v to move> ", cur.Side)
		if !scanner.Scan() {
			return scanner.Err()
		}
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return nil
		}
		var from, to, err = parseMove(commandLine)
		if err != nil || !game.MakeMove(from, to) {
			fmt.Fprintln(out, "bad move")
		}
	}
}

func parseMove(s string) (from, to common.Square, err error) {
	var fields = strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == 'x' || r == 'X'
	})
	if len(fields) != 2 {
		return common.SquareNone, common.SquareNone, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	if from, err = common.ParseSquare(fields[0]); err != nil {
		return
	}
	to, err = common.ParseSquare(fields[1])
	return
}

type game struct {
	positions []common.Position
}

func newGame() *game {
	return &game{
		positions: []common.Position{common.NewInitialPosition()},
	}
}

func (g *game) current() *common.Position {
	return &g.positions[len(g.positions)-1]
}

func (g *game) MakeMove(from, to common.Square) bool {
	var move, ok = g.current().FindMove(from, to)
	if !ok {
		return false
	}
	g.positions = append(g.positions, move.Next)
	return true
}

func (g *game) Print(out io.Writer, colors bool) {
	var cur = g.current()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			var cell = "   "
			if common.IsDarkSquare(row, col) {
				var sq, _ = common.SquareFromCoord(common.Coord{Row: row, Col: col})
				cell = cellString(cur.Board.Get(sq), sq)
			}
			if colors {
				cell = colorize(cell, common.IsDarkSquare(row, col))
			}
			fmt.Fprint(out, cell)
		}
		fmt.Fprintln(out)
	}
}

const (
	whiteMan  = "⛀"
	whiteKing = "⛁"
	blackMan  = "⛂"
	blackKing = "⛃"
)

var pieceSymbols = [...]string{
	common.WhiteMan:  whiteMan,
	common.WhiteKing: whiteKing,
	common.BlackMan:  blackMan,
	common.BlackKing: blackKing,
}

// empty dark squares show their number
func cellString(p common.Piece, sq common.Square) string {
	if p == common.Empty {
		return fmt.Sprintf("%2d ", sq)
	}
	return " " + pieceSymbols[p] + " "
}

const (
	fgBlack   = 30
	bgGreen   = 42
	bgHiWhite = 107
)

func colorize(s string, darkSquare bool) string {
	const fgColor = fgBlack
	var bgColor int
	if darkSquare {
		bgColor = bgGreen
	} else {
		bgColor = bgHiWhite
	}
	const escape = "\x1b"
	const reset = 0
	return fmt.Sprintf("%s[%s;%sm%s%s[%dm",
		escape, strconv.Itoa(fgColor), strconv.Itoa(bgColor), s, escape, reset)
}
