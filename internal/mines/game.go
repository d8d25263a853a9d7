// Package mines implements the rules of a single-player mine-clearing
// game: board generation, flood-fill reveals, flag bookkeeping and
// win/loss resolution. It does no I/O and keeps no global state; every
// Game owns its board alone.
package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/coder/quartz"
)

// Game is one mine-clearing game: the hidden mine layout, the overlay
// the player sees, and the status machine tying them together. A Game
// is not safe for concurrent use; callers driving it from several
// goroutines must serialize access themselves.
type Game struct {
	params GameParams

	// mineCount holds -1 for a mine, otherwise the number of mined
	// neighbors, row-major [y][x].
	mineCount [][]int8
	visible   Grid

	// unflaggedMineCount is mines minus flags placed. Flagging any cell
	// decrements it, mine or not, so it goes negative when the player
	// over-flags.
	unflaggedMineCount int
	// hiddenCellCount counts Hidden and Questioned cells. Flagged cells
	// are spoken for and no longer count as hidden.
	hiddenCellCount int

	status    GameStatus
	startedAt time.Time

	rnd   *rand.Rand
	clock quartz.Clock
}

type point struct{ x, y int }

// GameOption customizes a Game at construction.
type GameOption func(*Game)

// WithRand sets the mine placement source. Tests pin it for
// reproducible layouts.
func WithRand(rnd *rand.Rand) GameOption {
	return func(g *Game) { g.rnd = rnd }
}

// WithClock sets the time source behind UsedTime.
func WithClock(clock quartz.Clock) GameOption {
	return func(g *Game) { g.clock = clock }
}

// NewGame validates params and deals a first board. The zero Game is
// not usable; this is the only constructor.
func NewGame(params GameParams, opts ...GameOption) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Game{params: params}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(),
			new(maphash.Hash).Sum64(),
		))
	}
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	g.Restart()
	return g, nil
}

// Restart abandons the current round and deals a fresh board with the
// same parameters. Both grids are replaced wholesale, never patched.
func (g *Game) Restart() {
	w, h := g.params.Width, g.params.Height
	g.mineCount = make([][]int8, h)
	g.visible = make(Grid, h)
	for y := 0; y < h; y++ {
		g.mineCount[y] = make([]int8, w)
		g.visible[y] = make([]CellState, w)
		for x := 0; x < w; x++ {
			g.visible[y][x] = Hidden
		}
	}
	g.unflaggedMineCount = g.params.MineQuantity
	g.hiddenCellCount = w * h
	g.status = Playing
	g.startedAt = g.clock.Now()
	g.placeMines()
}

// Mark puts the requested mark on an unrevealed cell. The return value
// reports acceptance: re-requesting the current mark is an accepted
// no-op, while marking a revealed cell, marking out of bounds or
// marking after the game ended is rejected with no effect. Flag
// bookkeeping moves unflaggedMineCount and hiddenCellCount together,
// which is what keeps the win comparison honest.
func (g *Game) Mark(x, y int, style MarkStyle) bool {
	if g.status != Playing || !g.inBounds(x, y) {
		return false
	}
	cur := g.visible[y][x]
	if cur != Hidden && cur != Flagged && cur != Questioned {
		return false
	}
	switch style {
	case MarkNone:
		if cur == Flagged {
			g.unflaggedMineCount++
			g.hiddenCellCount++
		}
		g.visible[y][x] = Hidden
	case MarkMine:
		if cur != Flagged {
			g.unflaggedMineCount--
			g.hiddenCellCount--
			g.visible[y][x] = Flagged
		}
	case MarkQuestion:
		if cur == Flagged {
			g.unflaggedMineCount++
			g.hiddenCellCount++
		}
		g.visible[y][x] = Questioned
	default:
		return false
	}
	g.checkWin()
	return true
}

// Sweep reveals a single cell. Sweeping anything but a Hidden cell of a
// running game, or sweeping off the board, changes nothing and returns
// the status as-is. Revealing a zero spreads outward: every Hidden
// neighbor is revealed in turn and the wave keeps going through each
// new zero until it is walled in by numbers. Revealing a mine ends the
// round.
func (g *Game) Sweep(x, y int) GameStatus {
	if g.status != Playing || !g.inBounds(x, y) {
		return g.status
	}
	if g.visible[y][x] != Hidden {
		return g.status
	}
	if g.mineCount[y][x] == mined {
		g.die(x, y)
		return g.status
	}
	g.reveal(x, y)
	g.checkWin()
	return g.status
}

// reveal uncovers (x, y) and flood-fills from it while zeros turn up.
// The worklist only ever holds cells already revealed as zero, so each
// cell is processed at most once; a zero cell has no mined neighbors,
// so the flood can never touch a mine.
func (g *Game) reveal(x, y int) {
	g.visible[y][x] = CellState(g.mineCount[y][x])
	g.hiddenCellCount--
	if g.mineCount[y][x] != 0 {
		return
	}
	queue := []point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		g.forEachNeighbor(p.x, p.y, func(nx, ny int) {
			if g.visible[ny][nx] != Hidden {
				return
			}
			g.visible[ny][nx] = CellState(g.mineCount[ny][nx])
			g.hiddenCellCount--
			if g.mineCount[ny][nx] == 0 {
				queue = append(queue, point{nx, ny})
			}
		})
	}
}

// Explore clears around a revealed number whose flags satisfy it: when
// at least its value in flags sits on its neighbors, every Hidden
// neighbor is swept in one action. A misplaced flag makes this detonate
// the mine the flag should have covered. Exploring stops
// mid-neighborhood the moment a sweep ends the round.
func (g *Game) Explore(x, y int) GameStatus {
	if g.status != Playing || !g.inBounds(x, y) {
		return g.status
	}
	value := g.visible[y][x]
	if value < 0 {
		return g.status
	}
	flagged := 0
	g.forEachNeighbor(x, y, func(nx, ny int) {
		if g.visible[ny][nx] == Flagged {
			flagged++
		}
	})
	if flagged < int(value) {
		return g.status
	}
	g.forEachNeighbor(x, y, func(nx, ny int) {
		if g.status == Playing && g.visible[ny][nx] == Hidden {
			g.Sweep(nx, ny)
		}
	})
	return g.status
}

// die ends the round on the mine at (x, y) and normalizes the board
// for display: misplaced flags are called out, unfound mines shown,
// and the remaining covered cells opened up, unless the game was built
// with ShowMinesOnlyOnFailed in which case they stay covered. Counters
// are left as they were at the moment of death.
func (g *Game) die(x, y int) {
	g.visible[y][x] = ExplodedMine
	g.status = Lost
	for cy := range g.visible {
		for cx := range g.visible[cy] {
			state := g.visible[cy][cx]
			isMine := g.mineCount[cy][cx] == mined
			switch {
			case state == Flagged && !isMine:
				g.visible[cy][cx] = WrongFlag
			case (state == Hidden || state == Questioned) && isMine:
				g.visible[cy][cx] = RevealedMine
			case (state == Hidden || state == Questioned) && !isMine:
				if !g.params.ShowMinesOnlyOnFailed {
					g.visible[cy][cx] = CellState(g.mineCount[cy][cx])
				}
			}
		}
	}
}

// checkWin declares victory once the hidden-cell count meets the
// unflagged-mine count: at that point everything still covered is
// accounted a mine. Both counters drop to zero and the remaining mines
// are flagged so the final board reads fully resolved.
func (g *Game) checkWin() {
	if g.status != Playing || g.hiddenCellCount != g.unflaggedMineCount {
		return
	}
	g.status = Won
	g.unflaggedMineCount = 0
	g.hiddenCellCount = 0
	for y := range g.visible {
		for x := range g.visible[y] {
			if g.mineCount[y][x] == mined {
				g.visible[y][x] = Flagged
			}
		}
	}
}

func (g *Game) Params() GameParams { return g.params }
func (g *Game) Width() int         { return g.params.Width }
func (g *Game) Height() int        { return g.params.Height }
func (g *Game) MineQuantity() int  { return g.params.MineQuantity }

// RestMineQuantity is the "mines left" display value: mines minus
// flags placed. Over-flagging drives it negative.
func (g *Game) RestMineQuantity() int { return g.unflaggedMineCount }

func (g *Game) Status() GameStatus { return g.status }

// StartedAt is the wall-clock start of the current round.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// UsedTime is how long the current round has been running.
func (g *Game) UsedTime() time.Duration { return g.clock.Since(g.startedAt) }

// PlayerGrid is a snapshot of the board as the player sees it. The
// copy shares no memory with the game; callers may scribble on it.
func (g *Game) PlayerGrid() Grid { return g.visible.Clone() }

// CellAt is the one coordinate query that refuses bad input: it
// returns ErrOutOfBounds instead of a zero value, so probes can tell
// "off the board" apart from a real state.
func (g *Game) CellAt(x, y int) (CellState, error) {
	if !g.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return g.visible[y][x], nil
}

func (g *Game) inBounds(x, y int) bool {
	return x >= 0 && x < g.params.Width && y >= 0 && y < g.params.Height
}
