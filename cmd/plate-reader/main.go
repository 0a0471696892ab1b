package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/plate-reader/internal/anpr"
	"github.com/ironsheep/plate-reader/internal/config"
	"github.com/ironsheep/plate-reader/internal/log"
	"github.com/ironsheep/plate-reader/internal/ocr"
	"github.com/ironsheep/plate-reader/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// stdout carries the plate text only
	log.Init(stderr, os.Getenv(log.EnvLevel))

	cfg, err := config.Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if cfg.Version {
		printVersion(stdout, cfg)
		return 0
	}

	log.Debug("plate-reader", "version", Version, "built", BuildTime, "commit", GitCommit)

	_, err = anpr.New(cfg, anpr.Deps{Stdout: stdout}).Run()
	if anpr.IsFatal(err) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err != nil {
		log.Warn("plate not recorded", "error", err)
	}
	return 0
}

func printVersion(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "plate-reader %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Vision:     %s\n", vision.Default().Name())

	switch cfg.Engine {
	case ocr.EngineGosseract:
		fmt.Fprintf(w, "  OCR:        gosseract (libtesseract %s)\n", ocr.NewGosseract(cfg.Tessdata).Version())
	default:
		if v, err := ocr.NewCLI(cfg.Tessdata).Version(); err == nil {
			fmt.Fprintf(w, "  OCR:        %s\n", v)
		} else {
			fmt.Fprintf(w, "  OCR:        unavailable (%v)\n", err)
		}
	}
}
