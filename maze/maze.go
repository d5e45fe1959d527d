// Package maze generates braided orthogonal mazes on odd-sized grids.
package maze

import (
	"math/rand/v2"
)

// Point is a cell coordinate within a maze.
type Point struct {
	X, Y int
}

// Config controls generation.
type Config struct {
	Width, Height int

	// Braiding removes dead ends with this probability, adding cycles.
	// 0 keeps a perfect maze, 1 removes nearly every dead end.
	Braiding float64

	// Seed makes generation deterministic; 0 picks a random seed.
	Seed uint64
}

// Maze is a generated grid. Dimensions are rounded down to odd sizes so the
// outer border is always walled; rooms live on odd coordinates.
type Maze struct {
	Width, Height int
	Start, End    Point

	// Solution is the shortest path from Start to End, inclusive.
	Solution []Point

	walls []bool
}

var orthoDirs = []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Generate builds a maze with a recursive backtracker, optionally braids it,
// and solves it.
func Generate(cfg Config) *Maze {
	m := &Maze{
		Width:  oddBelow(cfg.Width),
		Height: oddBelow(cfg.Height),
	}
	m.walls = make([]bool, m.Width*m.Height)
	for i := range m.walls {
		m.walls[i] = true
	}

	m.Start = Point{X: 1, Y: 1}
	m.End = Point{X: m.Width - 2, Y: m.Height - 2}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	m.carve(rng)
	if cfg.Braiding > 0 {
		m.braid(cfg.Braiding, rng)
	}
	m.Solution = m.solve()

	return m
}

// Wall reports whether (x, y) is a wall. Out of bounds counts as wall.
func (m *Maze) Wall(x, y int) bool {
	return !m.passage(x, y)
}

// DeadEnds counts rooms with a single exit.
func (m *Maze) DeadEnds() int {
	count := 0
	for y := 1; y < m.Height-1; y += 2 {
		for x := 1; x < m.Width-1; x += 2 {
			if m.passage(x, y) && m.deadEnd(x, y) {
				count++
			}
		}
	}
	return count
}

func (m *Maze) passage(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return !m.walls[y*m.Width+x]
}

func (m *Maze) open(x, y int) {
	m.walls[y*m.Width+x] = false
}

// carve runs a recursive backtracker from Start, producing a spanning tree
// over the odd-coordinate rooms.
func (m *Maze) carve(rng *rand.Rand) {
	m.open(m.Start.X, m.Start.Y)
	stack := []Point{m.Start}

	jumps := []Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
	var candidates []Point

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < m.Width-1 && ny > 0 && ny < m.Height-1 && !m.passage(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.IntN(len(candidates))]
		m.open(curr.X+d.X/2, curr.Y+d.Y/2)
		m.open(curr.X+d.X, curr.Y+d.Y)
		stack = append(stack, Point{X: curr.X + d.X, Y: curr.Y + d.Y})
	}
}

// braid opens one extra wall next to dead-end rooms with the given
// probability, turning the spanning tree into a graph with cycles.
func (m *Maze) braid(probability float64, rng *rand.Rand) {
	jumps := []Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for y := 1; y < m.Height-1; y += 2 {
		for x := 1; x < m.Width-1; x += 2 {
			if !m.passage(x, y) || !m.deadEnd(x, y) || rng.Float64() >= probability {
				continue
			}

			var candidates []Point
			for _, d := range jumps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				// Open only walls that connect to another room without
				// merging corridors into a 2x2 plaza
				if m.passage(nx, ny) && !m.passage(wx, wy) && !m.opensPlaza(wx, wy) {
					candidates = append(candidates, Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				m.open(c.X, c.Y)
			}
		}
	}
}

func (m *Maze) deadEnd(x, y int) bool {
	exits := 0
	for _, d := range orthoDirs {
		if m.passage(x+d.X, y+d.Y) {
			exits++
		}
	}
	return exits == 1
}

// opensPlaza reports whether opening (x, y) would complete a 2x2 block of
// passages in any quadrant around it.
func (m *Maze) opensPlaza(x, y int) bool {
	quads := [4][3]Point{
		{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: 0}},
		{{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}},
		{{X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}},
		{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	}
	for _, q := range quads {
		if m.passage(x+q[0].X, y+q[0].Y) &&
			m.passage(x+q[1].X, y+q[1].Y) &&
			m.passage(x+q[2].X, y+q[2].Y) {
			return true
		}
	}
	return false
}

// solve finds the shortest Start to End path with BFS. A carved maze is
// always connected, so this only returns nil on corrupted grids.
func (m *Maze) solve() []Point {
	if !m.passage(m.Start.X, m.Start.Y) || !m.passage(m.End.X, m.End.Y) {
		return nil
	}

	cameFrom := make([]int, m.Width*m.Height)
	for i := range cameFrom {
		cameFrom[i] = -1
	}

	startIdx := m.Start.Y*m.Width + m.Start.X
	endIdx := m.End.Y*m.Width + m.End.X
	cameFrom[startIdx] = startIdx

	queue := []int{startIdx}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == endIdx {
			break
		}

		cx, cy := curr%m.Width, curr/m.Width
		for _, d := range orthoDirs {
			nx, ny := cx+d.X, cy+d.Y
			if !m.passage(nx, ny) {
				continue
			}
			next := ny*m.Width + nx
			if cameFrom[next] == -1 {
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}

	if cameFrom[endIdx] == -1 {
		return nil
	}

	var path []Point
	for idx := endIdx; ; idx = cameFrom[idx] {
		path = append(path, Point{X: idx % m.Width, Y: idx / m.Width})
		if cameFrom[idx] == idx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// oddBelow rounds down to an odd size, with 5 as the smallest grid that
// still holds two distinct rooms.
func oddBelow(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
