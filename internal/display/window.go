//go:build gocv

package display

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Window shows images in OpenCV highgui windows.
type Window struct {
	windows []*gocv.Window
	mats    []gocv.Mat
}

// NewWindow returns an empty highgui viewer.
func NewWindow() *Window {
	return &Window{}
}

// Show opens a window titled title displaying img.
func (w *Window) Show(title string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", title, err)
	}
	win := gocv.NewWindow(title)
	win.IMShow(mat)

	w.windows = append(w.windows, win)
	w.mats = append(w.mats, mat)
	return nil
}

// Wait blocks until a key is pressed, then closes every window.
func (w *Window) Wait() error {
	if len(w.windows) == 0 {
		return nil
	}
	w.windows[0].WaitKey(0)

	for _, win := range w.windows {
		win.Close()
	}
	for _, m := range w.mats {
		m.Close()
	}
	w.windows, w.mats = nil, nil
	return nil
}
