package vision

import (
	"image"

	"github.com/ironsheep/plate-reader/internal/detection"
	"github.com/ironsheep/plate-reader/internal/imaging"
)

// Native implements Ops in pure Go.
type Native struct{}

// NewNative returns the pure-Go backend.
func NewNative() *Native {
	return &Native{}
}

// Name returns "native".
func (n *Native) Name() string {
	return "native"
}

// Decode loads path with imaging.Load.
func (n *Native) Decode(path string) (image.Image, error) {
	return imaging.Load(path)
}

// Resize scales img to width with a Lanczos filter.
func (n *Native) Resize(img image.Image, width int) (image.Image, error) {
	return imaging.Resize(img, width), nil
}

// Deskew rotates img about its centre by the Otsu/minimum-area-rectangle
// skew estimate.
func (n *Native) Deskew(img image.Image) (image.Image, float64, error) {
	out, angle := imaging.Deskew(img)
	return out, angle, nil
}

// Grayscale converts img to luminance.
func (n *Native) Grayscale(img image.Image) (*image.Gray, error) {
	return imaging.Grayscale(img), nil
}

// Smooth runs imaging.Bilateral.
func (n *Native) Smooth(gray *image.Gray, diameter int, sigmaColor, sigmaSpace float64) (*image.Gray, error) {
	return imaging.Bilateral(gray, diameter, sigmaColor, sigmaSpace), nil
}

// Edges runs imaging.Canny.
func (n *Native) Edges(gray *image.Gray, low, high float64) (*image.Gray, error) {
	return imaging.Canny(gray, low, high), nil
}

// FindContours traces every border with detection.FindContours.
func (n *Native) FindContours(edges *image.Gray) ([]detection.Contour, error) {
	return detection.FindContours(edges), nil
}

// ApproxPolygon runs the closed Douglas-Peucker simplification.
func (n *Native) ApproxPolygon(c detection.Contour, epsilon float64) detection.Contour {
	return detection.ApproxPolygon(c, epsilon)
}

// Mask fills poly into a bounds-sized binary image.
func (n *Native) Mask(bounds image.Rectangle, poly detection.Contour) (*image.Gray, error) {
	return imaging.PolygonMask(bounds, poly), nil
}

// And keeps the pixels of img under mask and blacks out the rest.
func (n *Native) And(img image.Image, mask *image.Gray) (image.Image, error) {
	return imaging.ApplyMask(img, mask), nil
}
