package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// PolygonMask builds a single-channel mask the size of bounds with the
// polygon interior (boundary pixels included) set to 255 and everything
// else set to 0.
//
// Polygon vertices are pixel coordinates in the same space as bounds. The
// polygon is treated as closed; fewer than three vertices yield an empty mask.
func PolygonMask(bounds image.Rectangle, poly []image.Point) *image.Gray {
	width, height := bounds.Dx(), bounds.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))
	if len(poly) < 3 || width == 0 || height == 0 {
		return mask
	}

	// Vertices sit on pixel centres so boundary pixels get partial coverage.
	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Src
	first := poly[0].Sub(bounds.Min)
	r.MoveTo(float32(first.X)+0.5, float32(first.Y)+0.5)
	for _, p := range poly[1:] {
		p = p.Sub(bounds.Min)
		r.LineTo(float32(p.X)+0.5, float32(p.Y)+0.5)
	}
	r.ClosePath()

	coverage := image.NewAlpha(mask.Bounds())
	r.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	for i, a := range coverage.Pix {
		if a > 0 {
			mask.Pix[i] = 255
		}
	}
	return mask
}

// ApplyMask keeps the pixels of img where mask is non-zero and zeroes the
// rest, the per-channel equivalent of a bitwise AND with a 0/255 mask.
//
// The result has the same dimensions as img, anchored at (0,0). Zeroed
// pixels are opaque black. The mask is read in its own coordinate space
// starting at (0,0); pixels outside the mask are treated as zero.
func ApplyMask(img image.Image, mask *image.Gray) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	mb := mask.Bounds()
	black := color.NRGBA{0, 0, 0, 255}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			inside := x < mb.Dx() && y < mb.Dy() &&
				mask.Pix[y*mask.Stride+x] != 0
			if !inside {
				out.SetNRGBA(x, y, black)
			}
		}
	}
	return out
}
