// Package terminal renders engine frames to an ANSI terminal.
//
// Features:
//   - One buffered Write per frame: cursor home plus every row, no tearing
//   - Full-frame repaint, no diffing and no color sequences
//   - Alternate screen and cursor hiding on interactive terminals only
//   - Wide-rune aware row emission keeps columns aligned
//   - Clean restoration on exit and a crash-path Restore helper
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
