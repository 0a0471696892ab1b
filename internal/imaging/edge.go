package imaging

import (
	"image"
)

// Canny performs Canny edge detection on a grayscale image.
//
// The result is a binary image where white pixels (255) are edges and black
// pixels (0) are not. No smoothing is applied here: callers denoise first
// (the plate pipeline uses Bilateral).
//
// Parameters:
//   - src: Grayscale source image.
//   - thresholdLow: Gradient magnitude below which a pixel is never an edge.
//   - thresholdHigh: Gradient magnitude above which a pixel is always an edge.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators on 8-bit intensities,
//     magnitude = |Gx| + |Gy| (so thresholds are in the same units as
//     OpenCV's default L1 Canny)
//
//  2. Non-maximum suppression: the gradient direction is quantised to one of
//     four sectors and a pixel survives only if it is a local maximum along
//     that direction. Ties are broken towards the first neighbour so a step
//     edge produces a one-pixel-wide line.
//
//  3. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels above thresholdLow are weak edges, kept only when 8-connected
//     (directly or through other weak edges) to a strong edge
//     - Everything else is discarded
//
// Border pixels are never marked as edges.
func Canny(src *image.Gray, thresholdLow, thresholdHigh float64) *image.Gray {
	src = ToGray(src)
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	result := image.NewGray(b)
	if width < 3 || height < 3 {
		return result
	}

	at := func(x, y int) int {
		return int(src.Pix[clamp(y, 0, height-1)*src.Stride+clamp(x, 0, width-1)])
	}

	gradX := make([]int, width*height)
	gradY := make([]int, width*height)
	magnitude := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = absInt(gx) + absInt(gy)
		}
	}

	const (
		none = iota
		weak
		strong
	)
	state := make([]uint8, width*height)
	stack := make([]int, 0, width)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if float64(mag) <= thresholdLow {
				continue
			}

			gx, gy := gradX[i], gradY[i]
			ax, ay := absInt(gx), absInt(gy)

			// tan(22.5°) ≈ 0.4142, tan(67.5°) ≈ 2.4142
			var n1, n2 int
			switch {
			case ay*10000 <= ax*4142:
				n1, n2 = magnitude[i-1], magnitude[i+1]
			case ay*10000 >= ax*24142:
				n1, n2 = magnitude[i-width], magnitude[i+width]
			case (gx < 0) == (gy < 0):
				n1, n2 = magnitude[i-width-1], magnitude[i+width+1]
			default:
				n1, n2 = magnitude[i-width+1], magnitude[i+width-1]
			}
			if mag <= n1 || mag < n2 {
				continue
			}

			if float64(mag) > thresholdHigh {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	// Edge tracking: grow strong edges through connected weak pixels.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result.Pix[(i/width)*result.Stride+i%width] = 255

		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				j := ny*width + nx
				if state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	return result
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
