package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFrequency represents a quantized color and the share of the sampled
// pixels that fall into it.
type ColorFrequency struct {
	Hex        string   // Hex color "#RRGGBB" (quantized)
	HSL        HSLColor // HSL representation
	Percentage float64  // Percentage of sampled pixels (0-100)
}

// DominantColor returns the most common color among the pixels of img that
// lie inside mask (non-zero). A nil mask samples the whole image.
//
// # Color Quantization
//
// To group similar colors, each RGB component is quantized by dividing by 16
// and rounding down, so colors within 16 units of each other share a bucket:
//
//	quantized = (original / 16) * 16
//
// Ties between buckets go to the lexically smallest hex value so the result
// is stable.
//
// Returns an error when the mask selects no pixels.
func DominantColor(img image.Image, mask *image.Gray) (*ColorFrequency, error) {
	b := img.Bounds()
	counts := make(map[color.NRGBA]int)
	total := 0

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask != nil {
				mb := mask.Bounds()
				if x >= mb.Dx() || y >= mb.Dy() || mask.Pix[y*mask.Stride+x] == 0 {
					continue
				}
			}
			r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			key := color.NRGBA{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((bl >> 8) / 16 * 16),
				A: 255,
			}
			counts[key]++
			total++
		}
	}

	if total == 0 {
		return nil, fmt.Errorf("no pixels selected by mask")
	}

	buckets := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		cf, _ := colorful.MakeColor(c)
		h, s, l := cf.Hsl()
		if math.IsNaN(h) {
			h = 0
		}
		buckets = append(buckets, ColorFrequency{
			Hex:        cf.Hex(),
			HSL:        HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Percentage != buckets[j].Percentage {
			return buckets[i].Percentage > buckets[j].Percentage
		}
		return buckets[i].Hex < buckets[j].Hex
	})

	return &buckets[0], nil
}
