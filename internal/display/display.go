// Package display shows intermediate images to the person running the
// plate reader.
//
// A Viewer receives every image to show through Show and then blocks in
// Wait until the user dismisses them. Nop is used with --no-display and
// touches no window system at all.
//
// # Implementations
//
//   - Nop: discards everything
//   - Opener: writes each image to a temporary PNG, hands it to the
//     platform's file opener (xdg-open, open, or rundll32) and waits for
//     Enter on stdin
//   - Window: OpenCV highgui windows, built with -tags gocv, waiting for a
//     key press in any window
package display

import "image"

// Viewer displays images and waits for the user.
type Viewer interface {
	// Show presents img under title. It does not block.
	Show(title string, img image.Image) error

	// Wait blocks until the user dismisses the shown images, then releases
	// them.
	Wait() error
}

// Nop is a Viewer that shows nothing and never blocks.
type Nop struct{}

// Show discards the image.
func (Nop) Show(string, image.Image) error { return nil }

// Wait returns immediately.
func (Nop) Wait() error { return nil }
