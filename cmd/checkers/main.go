package main

import (
	"log"
	"os"
	"runtime"
)

const name = "checkers"

var (
	versionName = "dev"
	logger      = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	cliArgs     *CommandArgs
)

func main() {
	cliArgs = NewCommandArgs(os.Args)
	logger.Println(name,
		"VersionName", versionName,
		"RuntimeVersion", runtime.Version(),
		"NumCPU", runtime.NumCPU(),
	)
	var err = run()
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var handler = NewCommandHandler()
	handler.Add("train", trainHandler)
	handler.Add("play", playHandler)
	handler.Add("bestmove", bestMoveHandler)
	handler.Add("perft", perftHandler)
	handler.Add("features", featuresHandler)
	handler.Add("uci", uciHandler)
	return handler.Execute(cliArgs.CommandName())
}
