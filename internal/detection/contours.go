package detection

import (
	"image"
)

// Contour is a closed boundary as an ordered list of pixel coordinates.
type Contour []image.Point

// Neighbour offsets in counter-clockwise order (as seen on screen, Y down),
// starting east.
var neighbours = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

func neighbourIndex(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return -1
}

// FindContours traces every border in a binary image.
//
// Any non-zero pixel is foreground. Both outer borders and hole borders are
// returned, in raster order of their starting pixel; hierarchy is not
// reported. Each contour is compressed so straight horizontal, vertical and
// diagonal runs keep only their end points.
//
// # Algorithm
//
// Suzuki & Abe (1985) border following. The image is copied into a label
// grid padded with a one-pixel zero frame. A raster scan starts a new border
// at every unlabelled transition 0→1 (outer) or ≥1→0 (hole), follows it
// counter-clockwise, and labels the visited pixels so each border is traced
// exactly once.
func FindContours(edges *image.Gray) []Contour {
	b := edges.Bounds()
	width, height := b.Dx(), b.Dy()
	pw := width + 2

	f := make([]int32, pw*(height+2))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.Pix[y*edges.Stride+x] != 0 {
				f[(y+1)*pw+x+1] = 1
			}
		}
	}
	at := func(p image.Point) int32 { return f[p.Y*pw+p.X] }
	set := func(p image.Point, v int32) { f[p.Y*pw+p.X] = v }

	contours := make([]Contour, 0)
	nbd := int32(1)

	for y := 1; y <= height; y++ {
		for x := 1; x <= width; x++ {
			p := image.Pt(x, y)
			v := at(p)
			if v == 0 {
				continue
			}

			var from image.Point
			switch {
			case v == 1 && at(image.Pt(x-1, y)) == 0:
				from = image.Pt(x-1, y)
			case v >= 1 && at(image.Pt(x+1, y)) == 0:
				from = image.Pt(x+1, y)
			default:
				continue
			}

			nbd++
			chain := followBorder(p, from, nbd, at, set)
			for i := range chain {
				chain[i] = chain[i].Sub(image.Pt(1, 1)).Add(b.Min)
			}
			contours = append(contours, compressChain(chain))
		}
	}

	return contours
}

// followBorder traces one border starting at start, entering from the
// background pixel from, and labels it with nbd.
func followBorder(start, from image.Point, nbd int32, at func(image.Point) int32, set func(image.Point, int32)) []image.Point {
	// Look clockwise from the entry pixel for the first foreground neighbour.
	d0 := neighbourIndex(from.Sub(start))
	first := image.Point{}
	found := false
	for k := 0; k < 8; k++ {
		q := start.Add(neighbours[(d0-k+8)%8])
		if at(q) != 0 {
			first, found = q, true
			break
		}
	}
	if !found {
		set(start, -nbd)
		return []image.Point{start}
	}

	chain := []image.Point{start}
	prev, cur := first, start
	for {
		// Counter-clockwise search around cur, starting just after prev.
		dp := neighbourIndex(prev.Sub(cur))
		eastZero := false
		var next image.Point
		for k := 1; k <= 8; k++ {
			d := (dp + k) % 8
			q := cur.Add(neighbours[d])
			if at(q) != 0 {
				next = q
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		if eastZero {
			set(cur, -nbd)
		} else if at(cur) == 1 {
			set(cur, nbd)
		}

		if next == start && cur == first {
			return chain
		}
		prev, cur = cur, next
		chain = append(chain, cur)
	}
}

// compressChain drops interior points of straight runs in a closed chain.
func compressChain(chain []image.Point) Contour {
	n := len(chain)
	if n <= 2 {
		return Contour(chain)
	}
	out := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		prev := chain[(i-1+n)%n]
		next := chain[(i+1)%n]
		if chain[i].Sub(prev) != next.Sub(chain[i]) {
			out = append(out, chain[i])
		}
	}
	if len(out) == 0 {
		// Degenerate loop where every step is identical; keep the start.
		out = append(out, chain[0])
	}
	return out
}
