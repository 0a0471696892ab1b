package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestCanny_UniformImage(t *testing.T) {
	// Uniform image should have no edges
	gray := Grayscale(createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255}))

	edges := Canny(gray, 170, 200)

	for i, v := range edges.Pix {
		if v != 0 {
			t.Fatalf("uniform image produced an edge at offset %d", i)
		}
	}
}

func TestCanny_StrongVerticalEdge(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	edges := Canny(img, 170, 200)

	// The step must come out as a single-pixel-wide line at x=49.
	for y := 1; y < 99; y++ {
		count := 0
		for x := 0; x < 100; x++ {
			if edges.GrayAt(x, y).Y == 255 {
				count++
				if x != 49 {
					t.Fatalf("row %d: edge at x=%d, want x=49", y, x)
				}
			}
		}
		if count != 1 {
			t.Fatalf("row %d: %d edge pixels, want 1", y, count)
		}
	}
}

func TestCanny_BinaryOutput(t *testing.T) {
	edges := Canny(Grayscale(createEdgeTestImage(80, 60)), 170, 200)

	found := false
	for _, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("edge map holds non-binary value %d", v)
		}
		if v == 255 {
			found = true
		}
	}
	if !found {
		t.Error("rectangle produced no edges")
	}
}

func TestCanny_ClosedRectangleOutline(t *testing.T) {
	edges := Canny(Grayscale(createEdgeTestImage(100, 100)), 170, 200)

	// Black rectangle spans [25,75) on both axes. Every side must carry edges.
	sides := []struct {
		name string
		x, y int
	}{
		{"left", 24, 50},
		{"right", 74, 50},
		{"top", 50, 24},
		{"bottom", 50, 74},
	}
	for _, s := range sides {
		if edges.GrayAt(s.x, s.y).Y != 255 {
			t.Errorf("%s side: no edge at (%d,%d)", s.name, s.x, s.y)
		}
	}
}

func TestCanny_HysteresisDropsIsolatedWeakEdges(t *testing.T) {
	// A faint step (gradient 4*60 = 240 > high) next to a fainter one
	// (4*45 = 180, between the thresholds) that is not connected to it.
	img := image.NewGray(image.Rect(0, 0, 60, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			v := uint8(0)
			if x >= 10 {
				v = 60
			}
			if x >= 40 {
				v = 60 + 45
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	edges := Canny(img, 170, 200)

	if edges.GrayAt(9, 10).Y != 255 {
		t.Error("strong edge at x=9 was not kept")
	}
	if edges.GrayAt(39, 10).Y != 0 {
		t.Error("isolated weak edge at x=39 should be discarded")
	}
}

func TestCanny_Deterministic(t *testing.T) {
	gray := Bilateral(Grayscale(createEdgeTestImage(120, 90)), 11, 17, 17)

	a := Canny(gray, 170, 200)
	b := Canny(gray, 170, 200)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Canny is not deterministic")
	}
}

func TestCanny_SmallImage(t *testing.T) {
	edges := Canny(image.NewGray(image.Rect(0, 0, 2, 2)), 170, 200)
	if edges.Bounds().Dx() != 2 || edges.Bounds().Dy() != 2 {
		t.Errorf("dimensions: got %v, want 2x2", edges.Bounds())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// createEdgeTestImage creates an image with a black rectangle on white background
// to create clear edges for testing
func createEdgeTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}

	return img
}
