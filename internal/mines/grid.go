package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is the visible state of a single cell. Negative values are
// pre-reveal marks, 0..8 are revealed neighbor counts, and the values
// above 64 appear only on a lost board.
type CellState int8

const (
	Questioned CellState = -3
	Hidden     CellState = -2
	Flagged    CellState = -1

	ExplodedMine CellState = 65
	WrongFlag    CellState = 66
	RevealedMine CellState = 67
)

func (s CellState) String() string {
	switch {
	case s == Questioned:
		return "?"
	case s == Hidden:
		return "."
	case s == Flagged:
		return "F"
	case s >= 0 && s <= 8:
		return strconv.Itoa(int(s))
	case s == ExplodedMine:
		return "@"
	case s == WrongFlag:
		return "X"
	case s == RevealedMine:
		return "*"
	default:
		return "!"
	}
}

// Grid is a row-major [y][x] view of the board.
type Grid [][]CellState

// Clone returns a copy sharing no memory with g, down to the rows.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for y, row := range g {
		clone[y] = make([]CellState, len(row))
		copy(clone[y], row)
	}
	return clone
}

func (g Grid) String() string {
	var sb strings.Builder
	for y, row := range g {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, s := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}

// MarkStyle is the mark a player requests on an unrevealed cell.
type MarkStyle int8

const (
	MarkNone MarkStyle = iota
	MarkMine
	MarkQuestion
)

func (m MarkStyle) String() string {
	switch m {
	case MarkNone:
		return "none"
	case MarkMine:
		return "mine"
	case MarkQuestion:
		return "question"
	default:
		return "invalid"
	}
}

// ParseMarkStyle maps the style names used on the wire (and their
// one-letter shorthands) back to a MarkStyle.
func ParseMarkStyle(s string) (MarkStyle, error) {
	switch s {
	case "none", "n":
		return MarkNone, nil
	case "mine", "m", "flag", "f":
		return MarkMine, nil
	case "question", "q":
		return MarkQuestion, nil
	}
	return 0, fmt.Errorf("unknown mark style %q", s)
}

// GameStatus is the lifecycle state of a game. Transitions are
// one-directional: Playing to Won or Lost, then frozen until Restart.
type GameStatus int8

const (
	Playing GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}
