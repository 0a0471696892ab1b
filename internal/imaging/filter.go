package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// Grayscale converts a colour image to a single-channel luminance image.
func Grayscale(img image.Image) *image.Gray {
	return ToGray(effect.Grayscale(img))
}

// Bilateral applies an edge-preserving bilateral filter.
//
// Each output pixel is a weighted mean over a circular window of the given
// diameter. The weight of a neighbour is the product of a spatial Gaussian
// (sigmaSpace, in pixels) and a range Gaussian on the intensity difference
// (sigmaColor, in 8-bit levels), so flat regions are smoothed while strong
// intensity steps such as a plate border survive intact.
//
// Border pixels use clamped (replicated) edge values.
func Bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	src = ToGray(src)
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	out := image.NewGray(b)

	radius := diameter / 2
	if radius < 1 || sigmaColor <= 0 || sigmaSpace <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}

	type tap struct {
		dx, dy int
		weight float64
	}
	taps := make([]tap, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > radius*radius {
				continue
			}
			taps = append(taps, tap{dx, dy, math.Exp(-float64(d2) / (2 * sigmaSpace * sigmaSpace))})
		}
	}

	var rangeWeight [256]float64
	for i := range rangeWeight {
		rangeWeight[i] = math.Exp(-float64(i*i) / (2 * sigmaColor * sigmaColor))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := int(src.Pix[y*src.Stride+x])
			var sum, wsum float64
			for _, t := range taps {
				px := clamp(x+t.dx, 0, width-1)
				py := clamp(y+t.dy, 0, height-1)
				v := int(src.Pix[py*src.Stride+px])
				diff := v - center
				if diff < 0 {
					diff = -diff
				}
				w := t.weight * rangeWeight[diff]
				sum += w * float64(v)
				wsum += w
			}
			out.Pix[y*out.Stride+x] = uint8(sum/wsum + 0.5)
		}
	}

	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
