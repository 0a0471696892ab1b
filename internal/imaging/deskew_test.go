package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createTiltedRect draws a white rw x rh rectangle on black, centred and
// turned deg degrees clockwise on screen.
func createTiltedRect(width, height int, rw, rh, deg float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	sin, cos := math.Sincos(deg * math.Pi / 180)
	cx, cy := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			u := dx*cos + dy*sin
			v := -dx*sin + dy*cos
			c := color.RGBA{0, 0, 0, 255}
			if math.Abs(u) <= rw/2 && math.Abs(v) <= rh/2 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestOtsuThreshold(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(40)
			if x >= 10 {
				v = 200
			}
			gray.SetGray(x, y, color.Gray{Y: v})
		}
	}

	level := OtsuThreshold(gray)

	if level < 40 || level >= 200 {
		t.Errorf("got %d, want a level in [40,200)", level)
	}
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range gray.Pix {
		gray.Pix[i] = 120
	}

	if level := OtsuThreshold(gray); level != 0 {
		t.Errorf("got %d, want 0", level)
	}
}

func TestSkewAngle(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
	}{
		{"level", 0},
		{"clockwise", 8},
		{"counter-clockwise", -12},
		{"steep", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTiltedRect(300, 220, 160, 60, tt.deg)

			got := SkewAngle(Grayscale(img))

			if math.Abs(got-tt.deg) > 1 {
				t.Errorf("got %.2f degrees, want %.1f", got, tt.deg)
			}
		})
	}
}

func TestSkewAngle_Blank(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 30, 30))

	if got := SkewAngle(gray); got != 0 {
		t.Errorf("got %.2f, want 0", got)
	}
}

func TestDeskew_StraightensTiltedRectangle(t *testing.T) {
	img := createTiltedRect(300, 220, 160, 60, 10)

	out, angle := Deskew(img)

	if math.Abs(angle-10) > 1 {
		t.Errorf("correction: got %.2f degrees, want about 10", angle)
	}
	if out.Bounds().Dx() != 300 || out.Bounds().Dy() != 220 {
		t.Errorf("dimensions: got %v, want 300x220", out.Bounds())
	}
	if residual := SkewAngle(Grayscale(out)); math.Abs(residual) > 1 {
		t.Errorf("residual skew: got %.2f degrees, want about 0", residual)
	}
	// Centre stays inside the rectangle, corners stay black.
	if g := Grayscale(out).GrayAt(150, 110).Y; g < 200 {
		t.Errorf("centre: got %d, want white", g)
	}
	if g := Grayscale(out).GrayAt(2, 2).Y; g != 0 {
		t.Errorf("corner: got %d, want 0", g)
	}
}

func TestDeskew_LevelImageUnchanged(t *testing.T) {
	img := createTiltedRect(120, 80, 60, 20, 0)

	out, angle := Deskew(img)

	if angle != 0 {
		t.Errorf("correction: got %.2f, want 0", angle)
	}
	if out != image.Image(img) {
		t.Error("a level image should be returned as is")
	}
}

func TestNormalizeSkew(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{10, 10},
		{90, 0},
		{100, 10},
		{-80, 10},
		{-45, 45},
		{180, 0},
	}

	for _, tt := range tests {
		if got := normalizeSkew(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeSkew(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
