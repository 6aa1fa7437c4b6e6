package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/ChizhovVadim/CheckersGo/internal/perft"
	"github.com/ChizhovVadim/CheckersGo/internal/play"
	"github.com/ChizhovVadim/CheckersGo/internal/weightsio"
	"github.com/ChizhovVadim/CheckersGo/pkg/common"
	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
	"github.com/ChizhovVadim/CheckersGo/pkg/uci"
)

func loadEvaluator() (*eval.Evaluator, error) {
	var evaluator = eval.NewDefaultEvaluator(logger)
	var inPath = cliArgs.GetString("in", "")
	if inPath != "" {
		if err := weightsio.LoadFile(mapPath(inPath), evaluator); err != nil {
			return nil, err
		}
	}
	return evaluator, nil
}

func loadPosition() (common.Position, error) {
	return common.NewPositionFromFEN(cliArgs.GetString("fen", common.InitialPositionFEN))
}

func playHandler() error {
	var evaluator, err = loadEvaluator()
	if err != nil {
		return err
	}
	var humanSide = common.White
	if strings.EqualFold(cliArgs.GetString("side", "white"), "black") {
		humanSide = common.Black
	}
	var eng = engine.NewEngine(evaluator)
	return play.PlayCli(context.Background(), eng, os.Stdin, os.Stdout, play.Options{
		HumanSide: humanSide,
		Depth:     cliArgs.GetInt("depth", eng.Options.Depth),
		Colors:    cliArgs.GetBool("colors", true),
	})
}

func bestMoveHandler() error {
	var evaluator, err = loadEvaluator()
	if err != nil {
		return err
	}
	p, err := loadPosition()
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(evaluator)
	si, err := eng.Search(context.Background(), engine.SearchParams{
		Position: p,
		Limits:   engine.LimitsType{Depth: cliArgs.GetInt("depth", eng.Options.Depth)},
		Progress: func(si engine.SearchInfo) {
			logger.Printf("depth %d score %v nodes %d time %v move %v",
				si.Depth, engine.FormatScore(si.Score), si.Nodes, si.Time, si.Move)
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("bestmove %v score %v depth %d nodes %d\n",
		si.Move, engine.FormatScore(si.Score), si.Depth, si.Nodes)
	return nil
}

func perftHandler() error {
	p, err := loadPosition()
	if err != nil {
		return err
	}
	var depth = cliArgs.GetInt("depth", 6)
	var threads = cliArgs.GetInt("threads", runtime.NumCPU())
	result, err := perft.Divide(context.Background(), &p, depth, threads)
	if err != nil {
		return err
	}
	result.Print(log.New(os.Stdout, "", 0))
	return nil
}

func featuresHandler() error {
	var evaluator, err = loadEvaluator()
	if err != nil {
		return err
	}
	p, err := loadPosition()
	if err != nil {
		return err
	}
	for i, f := range evaluator.Features() {
		var state = "reserve"
		if evaluator.IsActive(i) {
			state = "active"
		}
		fmt.Printf("%-6v %-28v %-8v weight %8.4f value %6.2f  %v\n",
			f.Tag, f.Name, state, evaluator.Weight(i),
			evaluator.FeatureValue(i, &p.Board, p.Side), f.Description)
	}
	fmt.Printf("score %.4f\n", evaluator.Score(&p.Board, p.Side))
	return nil
}

func uciHandler() error {
	var evaluator, err = loadEvaluator()
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(evaluator)
	var protocol = uci.New(name, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Depth", Min: 0, Max: 30, Value: &eng.Options.Depth},
		},
	)
	protocol.Run(logger, os.Stdin, os.Stdout)
	return nil
}
