package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/cellwright/gridterm/engine"
	"github.com/cellwright/gridterm/sound"
)

func newSceneDisplay(t *testing.T, width, height int) (*engine.Display, *engine.Capture) {
	t.Helper()

	cap := &engine.Capture{}
	d, err := engine.NewDisplay(engine.Config{
		Width:       width,
		Height:      height,
		ActiveGlyph: '#',
		EmptyGlyph:  ' ',
	}, cap)
	if err != nil {
		t.Fatalf("Failed to create display: %v", err)
	}
	return d, cap
}

func TestBounceSceneStaysInField(t *testing.T) {
	d, _ := newSceneDisplay(t, 6, 6)
	scene, err := newBounceScene(d, sound.NewPlayer())
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	fieldW, fieldH := scene.field()
	for i := 0; i < 200; i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
		if scene.x < 0 || scene.x+ballSize > fieldW {
			t.Fatalf("Update %d: ball x=%d outside field width %d", i, scene.x, fieldW)
		}
		if scene.y < 0 || scene.y+ballSize > fieldH {
			t.Fatalf("Update %d: ball y=%d outside field height %d", i, scene.y, fieldH)
		}
	}
}

func TestBounceSceneRejectsTinyGrid(t *testing.T) {
	d, _ := newSceneDisplay(t, 3, 3)

	if _, err := newBounceScene(d, sound.NewPlayer()); err == nil {
		t.Error("Expected an error on a grid too small for the ball")
	}
}

func TestBounceSceneBallStaysPainted(t *testing.T) {
	d, _ := newSceneDisplay(t, 8, 7)
	scene, err := newBounceScene(d, sound.NewPlayer())
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	for i := 0; i < 25; i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}

		positions := scene.ball.Positions()
		if len(positions) != ballSize*ballSize {
			t.Fatalf("Update %d: expected %d ball cells, got %d", i, ballSize*ballSize, len(positions))
		}
		for _, p := range positions {
			if !d.CellActive(p.X, p.Y) {
				t.Fatalf("Update %d: ball cell (%d,%d) not active", i, p.X, p.Y)
			}
		}
	}
}

func TestBounceSceneStatusLine(t *testing.T) {
	d, cap := newSceneDisplay(t, 24, 6)
	scene, err := newBounceScene(d, sound.NewPlayer())
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	if err := scene.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := d.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	frame, ok := cap.Last()
	if !ok {
		t.Fatal("Expected a rendered frame")
	}
	bottom := frame.Rows[len(frame.Rows)-1]
	if !strings.Contains(bottom, "bounce") {
		t.Errorf("Expected status line on the bottom row, got %q", bottom)
	}
}

func newLifeTestScene(t *testing.T, width, height int) (*lifeScene, *engine.Display) {
	t.Helper()

	d, _ := newSceneDisplay(t, width, height)
	rng := rand.New(rand.NewPCG(1, 1))
	return newLifeScene(d, sound.NewPlayer(), 0, rng), d
}

func TestLifeSeedDensity(t *testing.T) {
	d, _ := newSceneDisplay(t, 10, 10)
	rng := rand.New(rand.NewPCG(1, 1))
	newLifeScene(d, sound.NewPlayer(), 1.0, rng)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if !d.CellActive(x, y) {
				t.Fatalf("Expected cell (%d,%d) seeded at density 1.0", x, y)
			}
		}
	}
}

func TestLifeBlinkerOscillates(t *testing.T) {
	scene, d := newLifeTestScene(t, 5, 5)

	// Horizontal blinker across the middle row
	d.ActivateCell(1, 2)
	d.ActivateCell(2, 2)
	d.ActivateCell(3, 2)

	if err := scene.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	vertical := []engine.Point{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	for _, p := range vertical {
		if !d.CellActive(p.X, p.Y) {
			t.Errorf("Expected live cell at (%d,%d) after one step", p.X, p.Y)
		}
	}
	if d.CellActive(1, 2) || d.CellActive(3, 2) {
		t.Error("Expected horizontal arms to die after one step")
	}

	if err := scene.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	for _, x := range []int{1, 2, 3} {
		if !d.CellActive(x, 2) {
			t.Errorf("Expected blinker back to horizontal at (%d,2)", x)
		}
	}
}

func TestLifeBlockIsStill(t *testing.T) {
	scene, d := newLifeTestScene(t, 4, 4)

	block := []engine.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	for _, p := range block {
		d.ActivateCell(p.X, p.Y)
	}

	for i := 0; i < 3; i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := (x == 1 || x == 2) && (y == 1 || y == 2)
			if d.CellActive(x, y) != want {
				t.Errorf("Cell (%d,%d): expected active=%v", x, y, want)
			}
		}
	}
}

func TestMazeSceneRejectsTinyGrid(t *testing.T) {
	d, _ := newSceneDisplay(t, 4, 4)

	if _, err := newMazeScene(d, sound.NewPlayer(), 0, 1); err == nil {
		t.Error("Expected an error on a grid too small for a maze")
	}
}

func TestMazeScenePaintsWalls(t *testing.T) {
	d, _ := newSceneDisplay(t, 11, 9)
	scene, err := newMazeScene(d, sound.NewPlayer(), 0, 5)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	m := scene.maze
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Wall(x, y) && !d.CellActive(x, y) {
				t.Fatalf("Wall at (%d,%d) not painted", x, y)
			}
		}
	}

	end, ok := d.CellAt(m.End.X, m.End.Y)
	if !ok || !end.Active || end.Symbol != 'X' {
		t.Errorf("Expected exit marker at %v, got %+v", m.End, end)
	}
}

func TestMazeSceneRunnerFollowsSolution(t *testing.T) {
	d, _ := newSceneDisplay(t, 11, 9)
	scene, err := newMazeScene(d, sound.NewPlayer(), 0, 5)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	solution := scene.maze.Solution
	if len(solution) < 2 {
		t.Fatal("Expected a multi-step solution")
	}

	positions := scene.runner.Positions()
	if len(positions) != 1 || positions[0].X != scene.maze.Start.X || positions[0].Y != scene.maze.Start.Y {
		t.Fatalf("Expected runner on the entrance %v, got %v", scene.maze.Start, positions)
	}

	for i := 1; i < len(solution); i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
		p := scene.runner.Positions()[0]
		if p.X != solution[i].X || p.Y != solution[i].Y {
			t.Fatalf("Step %d: runner at (%d,%d), want %v", i, p.X, p.Y, solution[i])
		}
		if scene.maze.Wall(p.X, p.Y) {
			t.Fatalf("Step %d: runner standing in a wall at (%d,%d)", i, p.X, p.Y)
		}
	}
}

func TestMazeSceneRebuildsAfterEscape(t *testing.T) {
	d, _ := newSceneDisplay(t, 9, 7)
	scene, err := newMazeScene(d, sound.NewPlayer(), 0, 3)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	first := scene.maze
	for i := 1; i < len(first.Solution); i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
	}

	// The runner is on the exit; the next update rebuilds
	if err := scene.Update(); err != nil {
		t.Fatalf("Rebuild update failed: %v", err)
	}
	if scene.maze == first {
		t.Error("Expected a fresh maze after the runner escaped")
	}
	if scene.step != 0 {
		t.Errorf("Expected step reset after rebuild, got %d", scene.step)
	}
	p := scene.runner.Positions()[0]
	if p.X != scene.maze.Start.X || p.Y != scene.maze.Start.Y {
		t.Errorf("Expected runner on the new entrance, got (%d,%d)", p.X, p.Y)
	}
}

func TestLifeMarksExtinction(t *testing.T) {
	scene, d := newLifeTestScene(t, 5, 5)

	// A lone cell dies of underpopulation
	d.ActivateCell(2, 2)

	if err := scene.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if d.CellActive(2, 2) {
		t.Error("Expected the lone cell to die")
	}
	if !scene.extinct {
		t.Error("Expected the scene to mark extinction")
	}
}
