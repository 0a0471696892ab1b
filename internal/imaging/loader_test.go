package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := createTestImage(t, 120, 80, color.RGBA{255, 0, 0, 255})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", img.Bounds().Dx(), img.Bounds().Dy())
	}

	r, g, b, _ := img.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("definitely not a png"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.png")},
		{"not an image", notImage},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		width        int
		wantW, wantH int
	}{
		{"downscale keeps aspect", 1000, 600, 500, 500, 300},
		{"upscale keeps aspect", 250, 100, 500, 500, 200},
		{"already target width", 500, 333, 500, 500, 333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(tt.w, tt.h, color.White)
			got := Resize(img, tt.width)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_SameWidthIsIdentity(t *testing.T) {
	img := createInMemoryImage(500, 100, color.White)
	if got := Resize(img, 500); got != img {
		t.Error("Resize should return the input when it is already the target width")
	}
}

func TestToGray_OffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(10, 20, 30, 40))
	src.SetGray(10, 20, color.Gray{Y: 200})

	g := ToGray(src)
	if g.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds: got %v, want (0,0)-(20,20)", g.Bounds())
	}
	if g.GrayAt(0, 0).Y != 200 {
		t.Errorf("origin pixel: got %d, want 200", g.GrayAt(0, 0).Y)
	}
}

func TestInspect(t *testing.T) {
	path := createTestImage(t, 64, 32, color.Black)
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	info, err := Inspect(path, img)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Width != 64 || info.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
}
