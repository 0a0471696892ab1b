package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/plate-reader/internal/log"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createPlateTextImage renders text on a white plate, scaled up for OCR
func createPlateTextImage(text string, scale int) *image.RGBA {
	width := len(text)*7 + 40
	height := 40

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(small, 20, 25, text, color.Black)

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// writeFakeTesseract installs a shell script that echoes its arguments
func writeFakeTesseract(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake tesseract: %v", err)
	}
	return path
}

func TestClean(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"AB-12 CD 3456", "AB12CD3456"},
		{"  KA 01 AB 1234\n\f", "KA01AB1234"},
		{"abc123", "abc123"},
		{"|[]{}.,:;'\"", ""},
		{"MH\t12\nDE\r1433", "MH12DE1433"},
		{"ÄB12é", "B12"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClean_OnlyAlphanumeric(t *testing.T) {
	inputs := []string{"x!@#$%^&*()y", "\x00\x01Z9\x7f", "日本 KA-05"}
	for _, in := range inputs {
		out := Clean(in)
		for _, r := range out {
			isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			if !isAlnum {
				t.Errorf("Clean(%q) kept %q", in, r)
			}
		}
		if Clean(out) != out {
			t.Errorf("Clean is not idempotent on %q", in)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"single line", Config{Language: "eng", EngineMode: 3, PageSegMode: 7}, false},
		{"empty language", Config{Language: "", EngineMode: 1, PageSegMode: 3}, true},
		{"oem too high", Config{Language: "eng", EngineMode: 4, PageSegMode: 3}, true},
		{"psm negative", Config{Language: "eng", EngineMode: 1, PageSegMode: -1}, true},
		{"psm too high", Config{Language: "eng", EngineMode: 1, PageSegMode: 14}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Args(t *testing.T) {
	got := strings.Join(DefaultConfig().args(), " ")
	if got != "-l eng --oem 1 --psm 3" {
		t.Errorf("args: got %q", got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		engine   string
		wantName string
		wantErr  bool
	}{
		{"", EngineCLI, false},
		{"tesseract", EngineCLI, false},
		{"gosseract", EngineGosseract, false},
		{"easyocr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			r, err := New(tt.engine, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			}
			if err == nil && r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
		})
	}
}

func TestCLI_MissingBinary(t *testing.T) {
	cli := &CLI{Binary: filepath.Join(t.TempDir(), "no-such-tesseract")}

	_, err := cli.Recognize(createPlateTextImage("AB12", 1), DefaultConfig())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestCLI_PassesConfigAndImage(t *testing.T) {
	// Echo the arguments, then the PNG signature read from stdin.
	bin := writeFakeTesseract(t, `echo "$@"; head -c 4 | tail -c 3; cat >/dev/null`)
	cli := &CLI{Binary: bin, Tessdata: "/opt/tessdata"}

	out, err := cli.Recognize(createPlateTextImage("AB12", 1), Config{Language: "deu", EngineMode: 3, PageSegMode: 7})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	want := "stdin stdout --tessdata-dir /opt/tessdata -l deu --oem 3 --psm 7"
	if !strings.HasPrefix(out, want) {
		t.Errorf("arguments: got %q, want prefix %q", out, want)
	}
	if !strings.HasSuffix(out, "PNG") {
		t.Errorf("stdin should carry a PNG, got %q", out)
	}
}

func TestCLI_NonZeroExit(t *testing.T) {
	bin := writeFakeTesseract(t, `echo "Error opening data file" >&2; exit 1`)
	cli := &CLI{Binary: bin}

	_, err := cli.Recognize(createPlateTextImage("AB12", 1), DefaultConfig())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "Error opening data file") {
		t.Errorf("error should carry tesseract's stderr, got %v", err)
	}
}

func TestCLI_Version(t *testing.T) {
	bin := writeFakeTesseract(t, `echo "tesseract 5.3.0"; echo " leptonica-1.82.0"`)
	cli := &CLI{Binary: bin}

	v, err := cli.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if v != "tesseract 5.3.0" {
		t.Errorf("Version() = %q", v)
	}
}

func TestCLI_RealText(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("Tesseract not available")
	}

	raw, err := NewCLI("").Recognize(createPlateTextImage("KA01AB1234", 4), Config{Language: "eng", EngineMode: 1, PageSegMode: 7})
	if err != nil {
		if strings.Contains(err.Error(), "data file") {
			t.Skip("Tesseract language data not available")
		}
		t.Fatalf("Recognize failed: %v", err)
	}

	t.Logf("Raw: %q, Clean: %q", raw, Clean(raw))
	if Clean(raw) == "" {
		t.Log("Warning: no text extracted - may need larger scale or different font")
	}
}

func TestGosseract_RealText(t *testing.T) {
	g := NewGosseract(os.Getenv("TESSDATA_PREFIX"))

	raw, err := g.Recognize(createPlateTextImage("HELLO", 4), DefaultConfig())
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			t.Skipf("Tesseract not available: %v", err)
		}
		t.Fatalf("Recognize failed: %v", err)
	}

	t.Logf("Version: %s, Raw: %q, Clean: %q", g.Version(), raw, Clean(raw))
}

func TestNoteEngineMode(t *testing.T) {
	tests := []struct {
		name      string
		oem       int
		wantLevel string
	}{
		{"default is noted at debug", DefaultEngineMode, "level=DEBUG"},
		{"explicit mode is a warning", 3, "level=WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.Init(&buf, "debug")
			defer log.InitFromEnv()

			noteEngineMode(tt.oem)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("got %q, want %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "default") {
				t.Errorf("message should say libtesseract's default is used: %q", out)
			}
		})
	}
}
