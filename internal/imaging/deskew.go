package imaging

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// minSkew is the smallest correction Deskew bothers to apply, in degrees.
const minSkew = 0.1

// OtsuThreshold returns the grey level that best separates gray into a
// dark and a light class by maximising the between-class variance. Pixels
// strictly above the level are the light class.
func OtsuThreshold(gray *image.Gray) uint8 {
	gray = ToGray(gray)
	b := gray.Bounds()

	var hist [256]int
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for _, v := range row {
			hist[v]++
		}
	}

	total := b.Dx() * b.Dy()
	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	var best uint8
	var bestVar, sumB float64
	wB := 0
	for t, n := range hist {
		wB += n
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * n)
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}
	return best
}

// SkewAngle estimates the rotation of the light foreground of gray, in
// degrees within (-45, 45]. Positive angles mean the content is turned
// clockwise on screen.
//
// The foreground is every pixel above the Otsu level; the angle is that of
// the minimum-area rectangle enclosing it. Images with fewer than three
// foreground pixels report 0.
func SkewAngle(gray *image.Gray) float64 {
	gray = ToGray(gray)
	hull := convexHull(foregroundExtremes(gray, OtsuThreshold(gray)))
	if len(hull) < 3 {
		return 0
	}
	return minAreaAngle(hull)
}

// Deskew rotates img about its centre so the foreground found by SkewAngle
// is axis aligned. The result keeps the size of img; uncovered corners are
// black. It returns the applied correction in degrees.
func Deskew(img image.Image) (image.Image, float64) {
	angle := SkewAngle(Grayscale(img))
	if math.Abs(angle) < minSkew {
		return img, 0
	}
	b := img.Bounds()
	rotated := imaging.Rotate(img, angle, color.Black)
	return imaging.CropCenter(rotated, b.Dx(), b.Dy()), angle
}

// foregroundExtremes returns the leftmost and rightmost pixel above level
// on each row. The convex hull of the foreground depends on nothing else.
func foregroundExtremes(gray *image.Gray, level uint8) []image.Point {
	b := gray.Bounds()
	var pts []image.Point
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		left, right := -1, -1
		for x, v := range row {
			if v > level {
				if left < 0 {
					left = x
				}
				right = x
			}
		}
		if left < 0 {
			continue
		}
		pts = append(pts, image.Pt(left, y))
		if right != left {
			pts = append(pts, image.Pt(right, y))
		}
	}
	return pts
}

// convexHull returns the hull of pts in counter-clockwise order using
// Andrew's monotone chain. Collinear points are dropped.
func convexHull(pts []image.Point) []image.Point {
	if len(pts) < 3 {
		return pts
	}
	sorted := append([]image.Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b image.Point) int64 {
		return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
	}

	hull := make([]image.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaAngle returns the orientation of the smallest rectangle enclosing
// hull. One side of that rectangle lies along a hull edge, so every edge
// direction is tried. Ties prefer the angle closest to zero.
func minAreaAngle(hull []image.Point) float64 {
	bestArea := math.Inf(1)
	bestAngle := 0.0
	for i := range hull {
		p, q := hull[i], hull[(i+1)%len(hull)]
		dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			continue
		}
		ux, uy := dx/norm, dy/norm

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, h := range hull {
			u := float64(h.X)*ux + float64(h.Y)*uy
			v := -float64(h.X)*uy + float64(h.Y)*ux
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, v), math.Max(maxV, v)
		}
		area := (maxU - minU) * (maxV - minV)

		angle := normalizeSkew(math.Atan2(dy, dx) * 180 / math.Pi)
		switch {
		case area < bestArea-1e-9:
			bestArea, bestAngle = area, angle
		case area <= bestArea+1e-9 && math.Abs(angle) < math.Abs(bestAngle):
			bestAngle = angle
		}
	}
	return bestAngle
}

// normalizeSkew folds an edge direction into (-45, 45]. A rectangle looks
// the same every quarter turn.
func normalizeSkew(deg float64) float64 {
	for deg > 45 {
		deg -= 90
	}
	for deg <= -45 {
		deg += 90
	}
	return deg
}
