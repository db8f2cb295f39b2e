// Package gtp exposes a Go Text Protocol flavoured command surface over a
// game. External controllers feed it one command line at a time and read
// one response per command.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	goban "github.com/tenuki/goban"
	"github.com/tenuki/goban/board"
	"github.com/tenuki/goban/game"
)

// MoveGenerator is the opaque computer-player oracle: given the game it
// returns a point to play, or pass=true to pass. Results are fed back as
// ordinary play commands.
type MoveGenerator func(g *goban.Game) (p *board.Point, pass bool)

type Engine struct {
	g *goban.Game

	known map[string]Command

	ch  chan string
	ret chan string

	Generate MoveGenerator
	New      func(rules goban.Rules) (*goban.Game, error)

	name, version string
	logger        *zap.Logger
}

func New(g *goban.Game, name, version string, known map[string]Command) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		g:       g,
		known:   known,
		name:    name,
		version: version,
		New:     goban.NewGame,
		logger:  zap.NewNop(),
	}
}

// SetLogger replaces the engine's logger. The default is a nop logger.
func (e *Engine) SetLogger(l *zap.Logger) { e.logger = l }

func (e *Engine) Start() (input, output chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

// Game returns the game the engine currently drives.
func (e *Engine) Game() *goban.Game { return e.g }

func (e *Engine) start() {
	for cmd := range e.ch {
		id, x, args, err := e.parse(cmd)
		if x == nil && err == nil {
			continue
		}
		if err != nil {
			e.logger.Debug("command rejected", zap.String("cmd", cmd), zap.Error(err))
			e.ret <- handleErr(id, err)
			continue
		}
		id, result, err := x.Do(id, args, e)
		e.logger.Debug("command handled", zap.String("cmd", cmd), zap.Error(err))
		e.ret <- handleResult(id, result, err)
	}
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return -1, nil, nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		tokens = tokens[1:]
	} else {
		// set err to nil because ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // an ID on its own is silently ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

func preprocess(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

// parseColour reads a GTP colour argument.
func parseColour(a string) (game.Colour, error) {
	switch strings.ToLower(a) {
	case "b", "black":
		return game.Black, nil
	case "w", "white":
		return game.White, nil
	}
	return game.None, errors.Errorf("Invalid colour %q", a)
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
