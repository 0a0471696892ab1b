package detection

import (
	"errors"
	"image"
	"sort"
)

const (
	// MaxCandidates is how many of the largest contours are examined.
	MaxCandidates = 30

	// EpsilonFraction scales a contour's perimeter into the
	// Douglas-Peucker tolerance.
	EpsilonFraction = 0.02

	// PlateVertices is the vertex count an approximation must have.
	PlateVertices = 4
)

// ErrPlateNotDetected is returned when no candidate contour approximates to
// a quadrilateral.
var ErrPlateNotDetected = errors.New("no plate-shaped contour found")

// Approximator reduces a closed contour to a polygon within epsilon pixels.
type Approximator func(c Contour, epsilon float64) Contour

// RankByArea returns up to n contours ordered by enclosed area, largest
// first. Contours of equal area keep their input order.
func RankByArea(contours []Contour, n int) []Contour {
	ranked := make([]Contour, len(contours))
	copy(ranked, contours)

	areas := make([]float64, len(ranked))
	idx := make([]int, len(ranked))
	for i, c := range ranked {
		idx[i] = i
		areas[i] = ContourArea(c)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return areas[idx[a]] > areas[idx[b]]
	})

	if n < 0 {
		n = 0
	}
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Contour, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[idx[i]]
	}
	return out
}

// FindQuad walks candidates in order and returns the approximation of the
// first one that has exactly PlateVertices vertices.
func FindQuad(candidates []Contour, approx Approximator) (Contour, error) {
	if approx == nil {
		approx = ApproxPolygon
	}
	for _, c := range candidates {
		eps := EpsilonFraction * ArcLength(c, true)
		poly := approx(c, eps)
		if len(poly) == PlateVertices {
			return poly, nil
		}
	}
	return nil, ErrPlateNotDetected
}

// FindPlate locates the plate quadrilateral in an edge map.
func FindPlate(edges *image.Gray) (Contour, error) {
	candidates := RankByArea(FindContours(edges), MaxCandidates)
	return FindQuad(candidates, ApproxPolygon)
}
