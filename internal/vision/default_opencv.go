//go:build gocv

package vision

// Default returns the backend compiled into this binary.
func Default() Ops {
	return NewOpenCV()
}
