package mines

// mined is the mineCount sentinel for a cell that holds a mine.
const mined int8 = -1

// placeMines scatters MineQuantity mines by rejection sampling: draw a
// cell, redraw when it is already mined, otherwise plant and bump the
// count of every clear neighbor. Layouts are uniform and no cell is
// promised safe, not even the first one swept.
func (g *Game) placeMines() {
	w, h := g.params.Width, g.params.Height
	for placed := 0; placed < g.params.MineQuantity; {
		x, y := g.rnd.IntN(w), g.rnd.IntN(h)
		if g.mineCount[y][x] == mined {
			continue
		}
		g.mineCount[y][x] = mined
		g.forEachNeighbor(x, y, func(nx, ny int) {
			if g.mineCount[ny][nx] != mined {
				g.mineCount[ny][nx]++
			}
		})
		placed++
	}
}

// forEachNeighbor visits the up-to-8 in-bounds neighbors of (x, y).
func (g *Game) forEachNeighbor(x, y int, visit func(nx, ny int)) {
	for ny := max(y-1, 0); ny <= min(y+1, g.params.Height-1); ny++ {
		for nx := max(x-1, 0); nx <= min(x+1, g.params.Width-1); nx++ {
			if nx == x && ny == y {
				continue
			}
			visit(nx, ny)
		}
	}
}
