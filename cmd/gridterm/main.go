package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/cellwright/gridterm/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if a scene crashes
	defer func() {
		if r := recover(); r != nil {
			// Restore terminal to sane state immediately
			terminal.Restore(os.Stdout)

			// Print error and stack trace to stderr so it's visible after reset
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRIDTERM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	root := &cli.Command{
		Name:  "gridterm",
		Usage: "run character grid scenes in the terminal",
		Commands: []*cli.Command{
			bounceCommand(),
			lifeCommand(),
			mazeCommand(),
			replayCommand(),
			sessionsCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
