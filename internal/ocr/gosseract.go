package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/plate-reader/internal/log"
)

// Gosseract runs libtesseract in-process.
type Gosseract struct {
	// Tessdata overrides the language data directory when not empty.
	Tessdata string

	clientFactory func() *gosseract.Client
}

// NewGosseract returns an in-process engine.
func NewGosseract(tessdata string) *Gosseract {
	return &Gosseract{Tessdata: tessdata, clientFactory: gosseract.NewClient}
}

// Name returns EngineGosseract.
func (g *Gosseract) Name() string {
	return EngineGosseract
}

// Recognize runs OCR on img with a fresh client.
func (g *Gosseract) Recognize(img image.Image, cfg Config) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	client := g.clientFactory()
	defer client.Close()

	if g.Tessdata != "" {
		if err := client.SetTessdataPrefix(g.Tessdata); err != nil {
			return "", fmt.Errorf("%w: failed to set tessdata path: %v", ErrUnavailable, err)
		}
	}
	if err := client.SetLanguage(strings.Split(cfg.Language, "+")...); err != nil {
		return "", fmt.Errorf("%w: failed to set language: %v", ErrUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
		return "", fmt.Errorf("%w: failed to set page segmentation mode: %v", ErrUnavailable, err)
	}
	noteEngineMode(cfg.EngineMode)

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: failed to set image: %v", ErrUnavailable, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: OCR failed: %v", ErrUnavailable, err)
	}

	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var sum float64
		for _, box := range boxes {
			sum += float64(box.Confidence)
		}
		log.Debug("gosseract words", "count", len(boxes), "mean_confidence", sum/float64(len(boxes)))
	}

	return text, nil
}

// noteEngineMode logs that --oem has no effect here: gosseract never
// passes an engine mode to libtesseract, which then runs OEM_DEFAULT.
// Only an explicit non-default request is a warning.
func noteEngineMode(oem int) {
	if oem != DefaultEngineMode {
		log.Warn("gosseract cannot select the engine mode; libtesseract's default is used instead", "requested_oem", oem)
		return
	}
	log.Debug("gosseract runs libtesseract's default engine mode", "requested_oem", oem)
}

// Version returns the linked libtesseract version.
func (g *Gosseract) Version() string {
	client := g.clientFactory()
	defer client.Close()
	return client.Version()
}
