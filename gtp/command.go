package gtp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	goban "github.com/tenuki/goban"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	var buf bytes.Buffer
	for c := range e.known {
		fmt.Fprintf(&buf, "%v\n", c)
	}
	return buf.String()
}

func quit(e *Engine) string      { close(e.ch); return "QUIT" }
func showboard(e *Engine) string { return fmt.Sprintf("\n%s\n", e.g) }

func clearBoard(e *Engine, args []string) (string, error) {
	g, err := e.New(e.g.Rules())
	if err != nil {
		return "", err
	}
	e.g = g
	return "", nil
}

func undo(e *Engine, args []string) (string, error) {
	return "", e.g.UndoLastMove()
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func boardSize(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"boardsize\"")
	}
	newsize, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
	}
	rules := e.g.Rules()
	rules.BoardSize = newsize
	g, err := e.New(rules)
	if err != nil {
		return "", err
	}
	e.g = g
	return "", nil
}

func komi(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"komi\"")
	}

	komi, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse komi argument")
	}

	// accept komi even if ridiculous; GTP says so
	e.g.SetKomi(float32(komi))
	return "", nil
}

func fixedHandicap(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"fixed_handicap\"")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse fixed_handicap argument")
	}
	rules := e.g.Rules()
	rules.Handicap = n
	g, err := e.New(rules)
	if err != nil {
		return "", err
	}
	e.g = g

	coords, err := goban.HandicapCoords(rules.BoardSize, n)
	if err != nil {
		return "", err
	}
	vertices := make([]string, len(coords))
	for i, c := range coords {
		vertices[i] = c.Vertex()
	}
	return strings.Join(vertices, " "), nil
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	c, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	switch args[1] {
	case "pass":
		return "", e.g.Pass(c)
	case "resign":
		return "", e.g.Resign(c)
	}
	p, err := e.g.Board().PointAtVertex(args[1])
	if err != nil {
		return "", err
	}
	return "", e.g.Play(c, p)
}

func genmove(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"genmove\"")
	}
	if e.Generate == nil {
		return "", errors.New("Unable to generate moves. No generator found")
	}
	c, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	p, pass := e.Generate(e.g)
	if pass {
		return "pass", e.g.Pass(c)
	}
	if err := e.g.Play(c, p); err != nil {
		return "", err
	}
	return p.Vertex(), nil
}

func isLegal(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"is_legal\"")
	}
	c, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	p, err := e.g.Board().PointAtVertex(args[1])
	if err != nil {
		return "", err
	}
	if err := e.g.IsLegal(c, p); err != nil {
		return "0", nil
	}
	return "1", nil
}

func finalScore(e *Engine, args []string) (string, error) {
	black, white := e.g.Score()
	switch {
	case black == white:
		return "0", nil
	case black > white:
		return fmt.Sprintf("B+%.1f", black-white), nil
	default:
		return fmt.Sprintf("W+%.1f", white-black), nil
	}
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"showboard":        stdlib(showboard),

		"known_command":  stdlib2(knownCommand),
		"clear_board":    stdlib2(clearBoard),
		"boardsize":      stdlib2(boardSize),
		"komi":           stdlib2(komi),
		"fixed_handicap": stdlib2(fixedHandicap),
		"play":           stdlib2(play),
		"genmove":        stdlib2(genmove),
		"undo":           stdlib2(undo),
		"is_legal":       stdlib2(isLegal),
		"final_score":    stdlib2(finalScore),
	}
}
