//go:build !unix

package terminal

// Size returns fallback terminal dimensions on platforms without winsize
// ioctls.
func Size() (width, height int) {
	return 80, 24
}
