package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CheckersGo/internal/trainer"
	"github.com/ChizhovVadim/CheckersGo/internal/weightsio"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

func trainHandler() error {
	policy, err := trainer.ParsePolicy(cliArgs.GetString("policy", trainer.PolicyTD.String()))
	if err != nil {
		return err
	}
	var options = trainer.NewOptions(policy)
	options.Depth = cliArgs.GetInt("depth", options.Depth)
	options.MaxMoves = cliArgs.GetInt("maxmoves", options.MaxMoves)
	options.LearningRate = cliArgs.GetFloat("lr", options.LearningRate)
	options.TallyLimit = cliArgs.GetInt("tally", options.TallyLimit)
	options.ReportInterval = cliArgs.GetInt("report", options.ReportInterval)
	options.OpeningPlies = cliArgs.GetInt("opening", options.OpeningPlies)
	options.AvoidRepetition = cliArgs.GetBool("repetition", options.AvoidRepetition)
	options.Seed = int64(cliArgs.GetInt("seed", int(options.Seed)))
	var games = cliArgs.GetInt("games", 100)
	var inPath = mapPath(cliArgs.GetString("in", ""))
	var outPath = mapPath(cliArgs.GetString("out", "weights.json"))
	var checkpoint = cliArgs.GetInt("checkpoint", 10)

	logger.Println("train started",
		"policy", policy,
		"games", games,
		"depth", options.Depth,
		"seed", options.Seed)
	defer logger.Println("train finished")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	var reports = make(chan trainer.GameReport, 16)

	var evaluator = eval.NewDefaultEvaluator(logger)
	options.OnGame = func(r trainer.GameReport) {
		if checkpoint > 0 && r.Game%checkpoint == 0 {
			if err := weightsio.SaveFile(outPath, evaluator); err != nil {
				logger.Println("checkpoint failed", err)
			}
		}
		select {
		case reports <- r:
		case <-ctx.Done():
		}
	}
	var tr = trainer.NewTrainer(evaluator, options, logger)
	if inPath != "" {
		if err := weightsio.LoadFile(inPath, evaluator); err != nil {
			return err
		}
	} else if cliArgs.GetBool("randomize", true) {
		tr.RandomizeWeights()
	}

	g.Go(func() error {
		defer close(reports)
		var err = tr.Learn(ctx, games)
		if saveErr := weightsio.SaveFile(outPath, evaluator); saveErr != nil && err == nil {
			err = saveErr
		}
		if errors.Is(err, context.Canceled) {
			logger.Println("train interrupted, weights saved to", outPath)
			return nil
		}
		return err
	})
	g.Go(func() error {
		return summarize(reports)
	})
	return g.Wait()
}

// summarize logs running win/draw counts as games finish.
func summarize(reports <-chan trainer.GameReport) error {
	var start = time.Now()
	var results [3]int
	var truncated int
	for r := range reports {
		results[r.Result]++
		if r.Truncated {
			truncated++
		}
		logger.Printf("game %d: +%d =%d -%d truncated %d rotations %d elapsed %v",
			r.Game, results[1], results[0], results[2], truncated, r.Rotations,
			time.Since(start).Round(time.Second))
	}
	return nil
}
