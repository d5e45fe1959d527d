package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/engine"
	"github.com/cellwright/gridterm/sound"
)

const ballSize = 2

func bounceCommand() *cli.Command {
	return &cli.Command{
		Name:  "bounce",
		Usage: "a ball bouncing around the grid",
		Flags: sceneFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runScene(ctx, cmd, func(d *engine.Display, cmd *cli.Command) (engine.Updater, error) {
				player := sound.NewPlayer()
				if cmd.Bool("sound") {
					if err := player.Init(); err != nil {
						log.Printf("audio initialization failed: %v (continuing without sound)", err)
					}
				}
				return newBounceScene(d, player)
			})
		},
	}
}

// bounceScene drives a 2x2 ball around the grid, reflecting off the edges.
// The bottom row holds a status line outside the bounce region.
type bounceScene struct {
	display *engine.Display
	player  *sound.Player
	ball    *engine.Object
	x, y    int
	vx, vy  int
	frame   int64
}

func newBounceScene(d *engine.Display, player *sound.Player) (*bounceScene, error) {
	if d.Width() < ballSize+2 || d.Height() < ballSize+3 {
		return nil, fmt.Errorf("grid %dx%d is too small for the bounce scene", d.Width(), d.Height())
	}

	s := &bounceScene{
		display: d,
		player:  player,
		x:       1,
		y:       1,
		vx:      1,
		vy:      1,
		ball: engine.NewObject([]engine.FormCell{
			{DX: 0, DY: 0, Symbol: '/'},
			{DX: 1, DY: 0, Symbol: '\\'},
			{DX: 0, DY: 1, Symbol: '\\'},
			{DX: 1, DY: 1, Symbol: '/'},
		}),
	}
	d.DrawObject(s.ball, s.x, s.y)
	return s, nil
}

// field reports the bounce region, which excludes the status row.
func (s *bounceScene) field() (width, height int) {
	return s.display.Width(), s.display.Height() - 1
}

func (s *bounceScene) Update() error {
	w, h := s.field()

	nx, ny := s.x+s.vx, s.y+s.vy
	if nx < 0 || nx+ballSize > w {
		s.vx = -s.vx
		nx = s.x + s.vx
		s.player.Beep(880, 60*time.Millisecond, sound.WaveSine)
	}
	if ny < 0 || ny+ballSize > h {
		s.vy = -s.vy
		ny = s.y + s.vy
		s.player.Beep(660, 60*time.Millisecond, sound.WaveSine)
	}

	s.x, s.y = nx, ny
	if err := s.display.MoveObject(s.ball, s.x, s.y); err != nil {
		return err
	}

	s.frame++
	status := fmt.Sprintf("bounce  %dx%d  frame %d", w, h, s.frame)
	s.display.DrawText(0, s.display.Height()-1, status)
	return nil
}
