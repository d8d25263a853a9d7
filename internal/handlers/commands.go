package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fenying/minesweeper-go/internal/mines"
)

// commandNargs maps a command word to its argument count:
//
//	s x y        sweep a cell
//	e x y        explore around a revealed cell
//	m x y style  mark a cell (none | mine | question)
//	r            restart the round
//	g            fetch the board without acting
var commandNargs = map[string]int{
	"s": 2,
	"e": 2,
	"m": 3,
	"r": 0,
	"g": 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgCount    = errors.New("invalid number of arguments")
)

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("x must be an integer: %w", err)
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("y must be an integer: %w", err)
	}
	return x, y, nil
}

// executeCommand applies a single command line to a game. Blank lines
// are ignored. Commands aimed at finished boards are valid: the engine
// treats them as no-ops, and "r" brings the board back.
func executeCommand(g *mines.Game, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	parts := strings.Split(command, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if len(parts)-1 != nargs {
		return fmt.Errorf("%w: %q wants %d", ErrBadArgCount, parts[0], nargs)
	}

	switch parts[0] {
	case "g":
		return nil
	case "r":
		g.Restart()
		return nil
	case "s":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		g.Sweep(x, y)
		return nil
	case "e":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		g.Explore(x, y)
		return nil
	case "m":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		style, err := mines.ParseMarkStyle(parts[3])
		if err != nil {
			return err
		}
		g.Mark(x, y, style)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
}
