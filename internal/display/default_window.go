//go:build gocv

package display

import "io"

// Default returns the interactive viewer compiled into this binary.
func Default(in io.Reader, out io.Writer) Viewer {
	return NewWindow()
}
