package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fenying/minesweeper-go/internal/mines"
)

type playCmd struct {
	Width                 int  `default:"9" help:"Board width."`
	Height                int  `default:"9" help:"Board height."`
	Mines                 int  `default:"10" help:"Number of mines."`
	ShowMinesOnlyOnFailed bool `help:"On a loss, reveal only the mines instead of the whole board."`
}

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	problemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	wonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	flagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	explodedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	// Roughly the classic desktop palette for neighbor counts.
	numberStyles = [9]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

const playHelp = `commands:
  s x y          sweep a cell
  e x y          explore around a revealed number
  m x y style    mark a cell (none | mine | question)
  r              restart with a fresh layout
  ?              this help
  q              quit`

func styleFor(s mines.CellState) lipgloss.Style {
	switch {
	case s == mines.Questioned:
		return questionStyle
	case s == mines.Flagged:
		return flagStyle
	case s == mines.ExplodedMine:
		return explodedStyle
	case s == mines.WrongFlag || s == mines.RevealedMine:
		return mineStyle
	case s >= 0 && s <= 8:
		return numberStyles[s]
	}
	return hiddenStyle
}

func renderBoard(g *mines.Game) string {
	var b strings.Builder
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"mines left: %d  time: %s",
		g.RestMineQuantity(), g.UsedTime().Round(time.Second),
	)))
	b.WriteByte('\n')
	for _, row := range g.PlayerGrid() {
		for x, cell := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(styleFor(cell).Render(cell.String()))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func parseCoords(args []string) (x, y int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want two coordinates, got %d", len(args))
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("x must be an integer: %w", err)
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("y must be an integer: %w", err)
	}
	return x, y, nil
}

func (c playCmd) Run() error {
	g, err := mines.NewGame(mines.GameParams{
		Width:                 c.Width,
		Height:                c.Height,
		MineQuantity:          c.Mines,
		ShowMinesOnlyOnFailed: c.ShowMinesOnlyOnFailed,
	})
	if err != nil {
		return err
	}

	fmt.Println(renderBoard(g))
	fmt.Println(playHelp)

	complain := func(err error) {
		fmt.Println(problemStyle.Render(err.Error()))
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit":
			return nil
		case "?", "help":
			fmt.Println(playHelp)
			continue
		case "r":
			g.Restart()
		case "s", "e":
			x, y, err := parseCoords(fields[1:])
			if err != nil {
				complain(err)
				continue
			}
			if fields[0] == "s" {
				g.Sweep(x, y)
			} else {
				g.Explore(x, y)
			}
		case "m":
			if len(fields) != 4 {
				complain(fmt.Errorf("usage: m x y style"))
				continue
			}
			x, y, err := parseCoords(fields[1:3])
			if err != nil {
				complain(err)
				continue
			}
			style, err := mines.ParseMarkStyle(fields[3])
			if err != nil {
				complain(err)
				continue
			}
			g.Mark(x, y, style)
		default:
			complain(fmt.Errorf("unknown command %q, ? for help", fields[0]))
			continue
		}

		fmt.Println(renderBoard(g))
		switch g.Status() {
		case mines.Won:
			fmt.Println(wonStyle.Render(fmt.Sprintf(
				"cleared in %s", g.UsedTime().Round(time.Millisecond),
			)))
		case mines.Lost:
			fmt.Println(lostStyle.Render("boom. r for a fresh board, q to quit"))
		}
	}
}
