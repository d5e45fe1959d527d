package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/engine"
	"github.com/cellwright/gridterm/maze"
	"github.com/cellwright/gridterm/sound"
)

func mazeCommand() *cli.Command {
	flags := append(sceneFlags(),
		&cli.FloatFlag{Name: "braid", Value: 0.15, Usage: "fraction of dead ends opened into loops"},
		&cli.UintFlag{Name: "seed", Value: 0, Usage: "deterministic seed (0 = random)"},
	)

	return &cli.Command{
		Name:  "maze",
		Usage: "generate a maze and walk its solution",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runScene(ctx, cmd, func(d *engine.Display, cmd *cli.Command) (engine.Updater, error) {
				player := sound.NewPlayer()
				if cmd.Bool("sound") {
					if err := player.Init(); err != nil {
						log.Printf("audio initialization failed: %v (continuing without sound)", err)
					}
				}
				return newMazeScene(d, player, cmd.Float("braid"), uint64(cmd.Uint("seed")))
			})
		},
	}
}

// mazeScene paints a maze and walks a runner along its solution. Once the
// runner escapes, a fresh maze replaces the solved one.
type mazeScene struct {
	display *engine.Display
	player  *sound.Player
	braid   float64
	seed    uint64
	runner  *engine.Object
	maze    *maze.Maze
	step    int
}

func newMazeScene(d *engine.Display, player *sound.Player, braid float64, seed uint64) (*mazeScene, error) {
	if d.Width() < 5 || d.Height() < 5 {
		return nil, fmt.Errorf("grid %dx%d is too small for a maze", d.Width(), d.Height())
	}

	s := &mazeScene{
		display: d,
		player:  player,
		braid:   braid,
		seed:    seed,
		runner:  engine.NewObject([]engine.FormCell{{Symbol: '@'}}),
	}
	s.rebuild()
	return s, nil
}

// rebuild generates a fresh maze sized to the grid and paints it.
func (s *mazeScene) rebuild() {
	d := s.display

	if s.runner.Placed() {
		d.RemoveObject(s.runner)
	}
	d.Clear()

	m := maze.Generate(maze.Config{
		Width:    d.Width(),
		Height:   d.Height(),
		Braiding: s.braid,
		Seed:     s.seed,
	})
	if s.seed != 0 {
		// Keep follow-up mazes reproducible without repeating the first
		s.seed++
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Wall(x, y) {
				d.ActivateCell(x, y)
			}
		}
	}
	d.ActivateCell(m.End.X, m.End.Y, 'X')

	s.maze = m
	s.step = 0
	d.DrawObject(s.runner, m.Start.X, m.Start.Y)
}

func (s *mazeScene) Update() error {
	path := s.maze.Solution
	if s.step >= len(path)-1 {
		// Escaped; celebrate and start over
		s.player.Beep(1320, 120*time.Millisecond, sound.WaveSine)
		s.rebuild()
		return nil
	}

	s.step++
	p := path[s.step]
	return s.display.MoveObject(s.runner, p.X, p.Y)
}
