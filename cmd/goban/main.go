// Command goban speaks the Go Text Protocol on stdin/stdout over a single
// game. Pass a configuration file path as the first argument to override
// board size, komi, handicap and rule options.
package main

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	goban "github.com/tenuki/goban"
	"github.com/tenuki/goban/gtp"
)

func main() {
	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := Setup(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Debug)
	defer logger.Sync()

	g, err := goban.NewGame(cfg.Rules())
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}
	logger.Info("game ready",
		zap.String("id", g.ID().String()),
		zap.Int("size", g.Rules().BoardSize),
		zap.Float32("komi", g.Rules().Komi),
		zap.Int("handicap", g.Rules().Handicap))

	e := gtp.New(g, cfg.Name, "1.0", nil)
	e.SetLogger(logger)
	ch, ret := e.Start()

	go func() {
		for line := range ret {
			fmt.Print(line)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		ch <- line
		if line == "quit" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}
