package detection

// ApproxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm. epsilon is the maximum allowed distance between the original
// curve and its approximation, in pixels.
//
// The closed curve is split at two mutually distant points so the result does
// not depend on where tracing started, each half is simplified on its own,
// and a final pass removes vertices that lie within epsilon of the line
// through their neighbours.
func ApproxPolygon(c Contour, epsilon float64) Contour {
	n := len(c)
	if n <= 2 || epsilon < 0 {
		return append(Contour(nil), c...)
	}

	a := farthestFrom(c, 0)
	b := farthestFrom(c, a)
	if a == b {
		return Contour{c[a]}
	}

	// Walk the loop a -> b and b -> a, keeping shared end points once.
	first := simplifyChain(c, a, b, epsilon)
	second := simplifyChain(c, b, a, epsilon)

	out := make(Contour, 0, len(first)+len(second))
	out = append(out, first...)
	out = append(out, second[1:len(second)-1]...)

	return dropCollinear(out, epsilon)
}

// farthestFrom returns the index of the point in c farthest from c[from].
func farthestFrom(c Contour, from int) int {
	best, bestDist := from, -1.0
	for i, p := range c {
		if d := distance(c[from], p); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// simplifyChain runs Douglas-Peucker over the indices from start to end,
// moving forward around the loop. Both end points are kept.
func simplifyChain(c Contour, start, end int, epsilon float64) Contour {
	n := len(c)
	length := (end - start + n) % n
	pts := make(Contour, length+1)
	for i := 0; i <= length; i++ {
		pts[i] = c[(start+i)%n]
	}

	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		idx, maxDist := -1, 0.0
		for i := s.lo + 1; i < s.hi; i++ {
			if d := lineDistance(pts[i], pts[s.lo], pts[s.hi]); d > maxDist {
				idx, maxDist = i, d
			}
		}
		if idx < 0 || maxDist <= epsilon {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
	}

	out := make(Contour, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// dropCollinear removes vertices of a closed polygon that sit within epsilon
// of the segment joining their neighbours, until none remain or the polygon
// is down to a triangle.
func dropCollinear(poly Contour, epsilon float64) Contour {
	for len(poly) > 3 {
		removed := false
		for i := range poly {
			n := len(poly)
			prev, next := poly[(i-1+n)%n], poly[(i+1)%n]
			if lineDistance(poly[i], prev, next) <= epsilon {
				poly = append(poly[:i], poly[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return poly
}
