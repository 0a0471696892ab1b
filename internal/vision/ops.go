// Package vision selects the image-processing backend the plate reader runs
// on.
//
// Every stage of the pipeline that touches pixels goes through the Ops
// interface, so the same pipeline code can run on the pure-Go
// implementation in internal/imaging and internal/detection, or on OpenCV
// when the binary is built with the gocv tag.
//
// # Backends
//
//   - Native: pure Go, always available, the default build
//   - OpenCV: gocv.io/x/gocv bindings, selected with -tags gocv
//
// Default returns whichever backend was compiled in.
//
// # Image Conventions
//
// Images passed between stages are anchored at (0,0). Binary images (edge
// maps and masks) hold only 0 and 255.
package vision

import (
	"image"

	"github.com/ironsheep/plate-reader/internal/detection"
)

// Ops is the set of image operations the plate pipeline needs.
type Ops interface {
	// Name identifies the backend in logs.
	Name() string

	// Decode reads and decodes an image file.
	Decode(path string) (image.Image, error)

	// Resize scales img to width pixels, preserving the aspect ratio.
	Resize(img image.Image, width int) (image.Image, error)

	// Deskew rotates img so its light foreground is axis aligned and
	// reports the correction in degrees, positive meaning the input was
	// turned clockwise. The output keeps the size of img.
	Deskew(img image.Image) (image.Image, float64, error)

	// Grayscale converts img to a single luminance channel.
	Grayscale(img image.Image) (*image.Gray, error)

	// Smooth applies an edge-preserving bilateral filter.
	Smooth(gray *image.Gray, diameter int, sigmaColor, sigmaSpace float64) (*image.Gray, error)

	// Edges runs Canny edge detection with hysteresis thresholds low and high.
	Edges(gray *image.Gray, low, high float64) (*image.Gray, error)

	// FindContours returns every border in a binary image, hierarchy discarded.
	FindContours(edges *image.Gray) ([]detection.Contour, error)

	// ApproxPolygon simplifies a closed contour to within epsilon pixels.
	ApproxPolygon(c detection.Contour, epsilon float64) detection.Contour

	// Mask builds a binary mask of the given bounds with poly filled.
	Mask(bounds image.Rectangle, poly detection.Contour) (*image.Gray, error)

	// And keeps the pixels of img selected by mask and blacks out the rest.
	And(img image.Image, mask *image.Gray) (image.Image, error)
}
