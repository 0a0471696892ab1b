// Package config turns the plate-reader command line into an immutable
// Config value.
//
// Parse is called once in main. Every flag has a long form, and the two
// most common ones also have a single-letter alias:
//
//	-i, --image       input image (required)
//	-o, --output      CSV log file (default data.csv)
//
// # Environment
//
//   - TESSDATA_PREFIX: default for --tessdata
//   - ANPR_LOG_LEVEL: log level, read by internal/log
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/plate-reader/internal/ocr"
	"github.com/ironsheep/plate-reader/internal/record"
)

// DefaultOutput is the CSV file used when --output is not given.
const DefaultOutput = "data.csv"

// SavePlateAuto derives the plate crop path from the input image path.
const SavePlateAuto = "auto"

// ErrUsage marks errors caused by bad or missing flags.
var ErrUsage = errors.New("usage error")

// Config is everything one run of the plate reader needs.
type Config struct {
	ImagePath  string
	OutputPath string
	OCR        ocr.Config
	NoDisplay  bool

	// Engine is the OCR engine name passed to ocr.New.
	Engine   string
	Tessdata string

	Mode      record.Mode
	Deskew    bool
	DebugDir  string
	SavePlate string
	ShowLog   bool

	Version bool
}

// Parse reads args (without the program name). Usage and flag errors are
// printed to stderr and returned wrapping ErrUsage; -h returns flag.ErrHelp.
func Parse(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{OCR: ocr.DefaultConfig()}
	var mode string

	fs := flag.NewFlagSet("plate-reader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ImagePath, "image", "", "path to the input image (required)")
	fs.StringVar(&cfg.ImagePath, "i", "", "shorthand for --image")
	fs.StringVar(&cfg.OutputPath, "output", DefaultOutput, "CSV file the result is recorded in")
	fs.StringVar(&cfg.OutputPath, "o", DefaultOutput, "shorthand for --output")
	fs.IntVar(&cfg.OCR.PageSegMode, "psm", ocr.DefaultPageSegMode, "Tesseract page segmentation mode (0-13)")
	fs.IntVar(&cfg.OCR.EngineMode, "oem", ocr.DefaultEngineMode, "Tesseract OCR engine mode (0-3)")
	fs.StringVar(&cfg.OCR.Language, "lang", ocr.DefaultLanguage, "Tesseract language code")
	fs.BoolVar(&cfg.NoDisplay, "no-display", false, "do not show the original image and plate region")
	fs.StringVar(&cfg.Engine, "engine", ocr.EngineCLI, "OCR engine: tesseract (CLI) or gosseract (in-process)")
	fs.StringVar(&cfg.Tessdata, "tessdata", os.Getenv("TESSDATA_PREFIX"), "Tesseract language data directory")
	fs.StringVar(&mode, "mode", record.ModeAppend.String(), "output mode: append or replace")
	fs.BoolVar(&cfg.Deskew, "deskew", false, "straighten the image before searching for the plate")
	fs.StringVar(&cfg.DebugDir, "debug-dir", "", "write intermediate images to this directory")
	fs.StringVar(&cfg.SavePlate, "save-plate", "", "write the plate crop to this path ('auto' derives it from --image)")
	fs.BoolVar(&cfg.ShowLog, "show-log", false, "print every recorded plate after writing")
	fs.BoolVar(&cfg.Version, "version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "plate-reader - read the licence plate in a photo")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: plate-reader -i IMAGE [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintln(stderr, "  ANPR_LOG_LEVEL=debug     Enable debug logging")
		fmt.Fprintln(stderr, "  TESSDATA_PREFIX=DIR      Tesseract language data directory")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(fs.Args(), " "))
	}
	if cfg.Version {
		return cfg, nil
	}

	m, err := record.ParseMode(mode)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.Mode = m

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the fields Parse cannot check flag by flag.
func (c Config) Validate() error {
	if c.ImagePath == "" {
		return fmt.Errorf("%w: --image is required", ErrUsage)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: --output must not be empty", ErrUsage)
	}
	if c.Engine != ocr.EngineCLI && c.Engine != ocr.EngineGosseract {
		return fmt.Errorf("%w: unknown OCR engine %q", ErrUsage, c.Engine)
	}
	if err := c.OCR.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// PlatePath returns where the plate crop is saved, or "" when disabled.
func (c Config) PlatePath() string {
	if c.SavePlate != SavePlateAuto {
		return c.SavePlate
	}
	ext := filepath.Ext(c.ImagePath)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(c.ImagePath, filepath.Ext(c.ImagePath)) + "_plate" + ext
}
