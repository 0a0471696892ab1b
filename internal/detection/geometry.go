package detection

import (
	"image"
	"math"
)

// ContourArea returns the area enclosed by a closed contour, computed with
// the shoelace formula over its vertices. The result is always non-negative
// regardless of winding direction. Contours with fewer than three points
// have zero area.
func ContourArea(c Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum int
	for i := 0; i < n; i++ {
		p, q := c[i], c[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// ArcLength returns the length of the polyline through c. When closed is
// true the segment from the last point back to the first is included.
func ArcLength(c Contour, closed bool) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var length float64
	for i := 1; i < n; i++ {
		length += distance(c[i-1], c[i])
	}
	if closed {
		length += distance(c[n-1], c[0])
	}
	return length
}

// BoundingBox returns the smallest axis-aligned rectangle containing every
// point of c, with an exclusive maximum corner.
func BoundingBox(c Contour) image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0].Add(image.Pt(1, 1))}
	for _, p := range c[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// distance returns the Euclidean distance between two points.
func distance(a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// lineDistance returns the perpendicular distance from p to the infinite
// line through a and b. When a == b it is the distance from p to a.
func lineDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	norm := math.Sqrt(dx*dx + dy*dy)
	if norm == 0 {
		return distance(p, a)
	}
	return math.Abs(dy*float64(p.X-a.X)-dx*float64(p.Y-a.Y)) / norm
}
