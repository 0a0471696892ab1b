package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrUnavailable is wrapped by every error that stops an engine from
// producing text.
var ErrUnavailable = errors.New("ocr engine unavailable")

// Engine names accepted by New.
const (
	EngineCLI       = "tesseract"
	EngineGosseract = "gosseract"
)

// TextRecognizer extracts raw text from an image.
type TextRecognizer interface {
	// Name identifies the engine in logs.
	Name() string

	// Recognize returns the engine's raw text output for img.
	Recognize(img image.Image, cfg Config) (string, error)
}

// New returns the engine called name. tessdata, when not empty, overrides
// the language data directory.
func New(name, tessdata string) (TextRecognizer, error) {
	switch name {
	case EngineCLI, "":
		return NewCLI(tessdata), nil
	case EngineGosseract:
		return NewGosseract(tessdata), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want %s or %s)", name, EngineCLI, EngineGosseract)
	}
}

// encodePNG serialises img for engines that take encoded bytes.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
