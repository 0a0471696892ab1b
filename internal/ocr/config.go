package ocr

import (
	"fmt"
	"strconv"
)

// Tesseract defaults used by the plate reader.
const (
	DefaultLanguage    = "eng"
	DefaultEngineMode  = 1
	DefaultPageSegMode = 3
)

// Config selects how Tesseract reads an image.
type Config struct {
	// Language is a Tesseract language code such as "eng" or "deu+eng".
	Language string

	// EngineMode is the OCR engine mode (--oem), 0 to 3.
	EngineMode int

	// PageSegMode is the page segmentation mode (--psm), 0 to 13.
	PageSegMode int
}

// DefaultConfig returns the configuration used when no flags override it.
func DefaultConfig() Config {
	return Config{
		Language:    DefaultLanguage,
		EngineMode:  DefaultEngineMode,
		PageSegMode: DefaultPageSegMode,
	}
}

// Validate reports whether every field is within the range Tesseract
// accepts.
func (c Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	if c.EngineMode < 0 || c.EngineMode > 3 {
		return fmt.Errorf("engine mode %d out of range 0-3", c.EngineMode)
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return fmt.Errorf("page segmentation mode %d out of range 0-13", c.PageSegMode)
	}
	return nil
}

// args returns the tesseract command-line options for this configuration.
func (c Config) args() []string {
	return []string{
		"-l", c.Language,
		"--oem", strconv.Itoa(c.EngineMode),
		"--psm", strconv.Itoa(c.PageSegMode),
	}
}
