package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/record"
	"github.com/cellwright/gridterm/terminal"
)

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "db", Value: "gridterm.db", Usage: "recording store"}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "replay a recorded session in the terminal",
		ArgsUsage: "SESSION",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.IntFlag{Name: "fps", Value: 0, Usage: "override pacing (0 = recorded timing)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("expected exactly one session id")
			}
			id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", cmd.Args().First(), err)
			}

			store, err := record.Open(cmd.String("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var interval time.Duration
			if fps := int(cmd.Int("fps")); fps > 0 {
				interval = time.Second / time.Duration(fps)
			}

			tw := terminal.Stdout()
			if err := tw.Start(); err != nil {
				return fmt.Errorf("failed to prepare terminal: %w", err)
			}
			defer tw.Stop()

			if err := store.Replay(runCtx, id, tw, interval); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "list recorded sessions",
		Flags: []cli.Flag{dbFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := record.Open(cmd.String("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.Sessions(ctx)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("no recorded sessions")
				return nil
			}

			fmt.Printf("%6s  %-19s  %-9s  %s\n", "ID", "STARTED", "SIZE", "FRAMES")
			for _, s := range sessions {
				size := fmt.Sprintf("%dx%d", s.Width, s.Height)
				fmt.Printf("%6d  %-19s  %-9s  %d\n",
					s.ID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), size, s.Frames)
			}
			return nil
		},
	}
}
