package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/engine"
	"github.com/cellwright/gridterm/record"
	"github.com/cellwright/gridterm/remote"
	"github.com/cellwright/gridterm/screen"
	"github.com/cellwright/gridterm/terminal"
)

// sceneFlags are shared by every scene command.
func sceneFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Value: 0, Usage: "grid width (0 = fit terminal)"},
		&cli.IntFlag{Name: "height", Value: 0, Usage: "grid height (0 = fit terminal)"},
		&cli.IntFlag{Name: "fps", Value: 30, Usage: "frames per second (0 = unpaced)"},
		&cli.StringFlag{Name: "record", Value: "", Usage: "record the session into this SQLite file"},
		&cli.StringFlag{Name: "serve", Value: "", Usage: "serve frames to browsers on this address, e.g. :8080"},
		&cli.BoolFlag{Name: "screen", Usage: "render through tcell instead of raw ANSI output"},
		&cli.BoolFlag{Name: "sound", Usage: "enable sound cues"},
		&cli.BoolFlag{Name: "debug", Usage: "write debug logs to logs/" + logFileName},
	}
}

// buildFunc constructs a scene updater once the display exists.
type buildFunc func(d *engine.Display, cmd *cli.Command) (engine.Updater, error)

// runScene wires flags into a display, sinks and input handling, then drives
// the engine until the scene stops or the user quits.
func runScene(ctx context.Context, cmd *cli.Command, build buildFunc) error {
	logFile := setupLogging(cmd.Bool("debug"))
	if logFile != nil {
		defer logFile.Close()
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	width := int(cmd.Int("width"))
	height := int(cmd.Int("height"))

	var sinks []engine.Sink
	var scr *screen.Sink

	if cmd.Bool("screen") {
		s, err := screen.New()
		if err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		scr = s
		defer scr.Fini()

		if width == 0 || height == 0 {
			sw, sh := scr.Size()
			if width == 0 {
				width = sw
			}
			if height == 0 {
				height = sh
			}
		}
		sinks = append(sinks, scr)
	} else {
		tw := terminal.Stdout()
		if width == 0 || height == 0 {
			sw, sh := terminal.Size()
			if width == 0 {
				width = sw
			}
			if height == 0 {
				// Leave the last terminal row for the cursor so the
				// frame does not scroll
				height = sh - 1
			}
		}
		if err := tw.Start(); err != nil {
			return fmt.Errorf("failed to prepare terminal: %w", err)
		}
		defer tw.Stop()
		sinks = append(sinks, tw)
	}

	if path := cmd.String("record"); path != "" {
		store, err := record.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open recording store: %w", err)
		}
		defer store.Close()

		rec := record.NewRecorder(store)
		defer func() { log.Printf("recorded session %d into %s", rec.SessionID(), path) }()
		sinks = append(sinks, rec)
	}

	if addr := cmd.String("serve"); addr != "" {
		srv := remote.NewServer(addr)
		go func() {
			if err := srv.Run(runCtx); err != nil {
				log.Printf("frame server stopped: %v", err)
			}
		}()
		sinks = append(sinks, srv)
	}

	cfg := engine.DefaultConfig()
	cfg.Width = width
	cfg.Height = height

	display, err := engine.NewDisplay(cfg, engine.MultiSink(sinks...))
	if err != nil {
		return err
	}

	updater, err := build(display, cmd)
	if err != nil {
		return err
	}

	// With tcell owning input, keys quit the scene; the raw ANSI path
	// relies on the signal context alone
	if scr != nil {
		go func() {
			for {
				ev := scr.PollEvent()
				if ev == nil {
					return
				}
				key, ok := ev.(*tcell.EventKey)
				if !ok {
					continue
				}
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
					(key.Key() == tcell.KeyRune && key.Rune() == 'q') {
					stop()
					return
				}
			}
		}()
	}

	var interval time.Duration
	if fps := int(cmd.Int("fps")); fps > 0 {
		interval = time.Second / time.Duration(fps)
	}

	eng := engine.New(display, updater)
	if err := eng.Run(runCtx, interval); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
