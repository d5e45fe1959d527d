package main

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/engine"
	"github.com/cellwright/gridterm/sound"
)

func lifeCommand() *cli.Command {
	flags := append(sceneFlags(),
		&cli.FloatFlag{Name: "density", Value: 0.25, Usage: "initial live cell density"},
		&cli.UintFlag{Name: "seed", Value: 0, Usage: "deterministic seed (0 = random)"},
	)

	return &cli.Command{
		Name:  "life",
		Usage: "Conway's Game of Life over the whole grid",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runScene(ctx, cmd, func(d *engine.Display, cmd *cli.Command) (engine.Updater, error) {
				player := sound.NewPlayer()
				if cmd.Bool("sound") {
					if err := player.Init(); err != nil {
						log.Printf("audio initialization failed: %v (continuing without sound)", err)
					}
				}

				var rng *rand.Rand
				if seed := uint64(cmd.Uint("seed")); seed != 0 {
					rng = rand.New(rand.NewPCG(seed, seed))
				} else {
					rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
				}

				return newLifeScene(d, player, cmd.Float("density"), rng), nil
			})
		},
	}
}

// lifeScene runs Conway's Game of Life directly on the display grid. Cells
// outside the grid count as dead.
type lifeScene struct {
	display *engine.Display
	player  *sound.Player
	next    []bool
	extinct bool
}

func newLifeScene(d *engine.Display, player *sound.Player, density float64, rng *rand.Rand) *lifeScene {
	s := &lifeScene{
		display: d,
		player:  player,
		next:    make([]bool, d.Width()*d.Height()),
	}

	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if rng.Float64() < density {
				d.ActivateCell(x, y)
			}
		}
	}
	return s
}

func (s *lifeScene) Update() error {
	d := s.display
	w, h := d.Width(), d.Height()

	alive := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := s.neighbors(x, y)
			live := d.CellActive(x, y)
			next := n == 3 || (live && n == 2)
			s.next[y*w+x] = next
			if next {
				alive++
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s.next[y*w+x] {
				d.ActivateCell(x, y)
			} else {
				d.DeactivateCell(x, y)
			}
		}
	}

	if alive == 0 && !s.extinct {
		s.extinct = true
		s.player.Beep(220, 300*time.Millisecond, sound.WaveSquare)
	}
	return nil
}

func (s *lifeScene) neighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s.display.CellActive(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}
