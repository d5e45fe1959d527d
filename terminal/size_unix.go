//go:build unix

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// Size returns the terminal dimensions of stdout, falling back to 80x24 when
// the size cannot be determined (pipes, CI).
func Size() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}
