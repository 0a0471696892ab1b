package ocr

import (
	"bytes"
	"fmt"
	"image"
	"os/exec"
	"strings"

	"github.com/ironsheep/plate-reader/internal/log"
)

// CLI runs the tesseract executable.
type CLI struct {
	// Binary is the executable name or path; "tesseract" when empty.
	Binary string

	// Tessdata overrides the language data directory when not empty.
	Tessdata string
}

// NewCLI returns a CLI engine using the tesseract found on PATH.
func NewCLI(tessdata string) *CLI {
	return &CLI{Binary: "tesseract", Tessdata: tessdata}
}

// Name returns EngineCLI.
func (c *CLI) Name() string {
	return EngineCLI
}

// Recognize encodes img as PNG, pipes it to tesseract and returns stdout.
func (c *CLI) Recognize(img image.Image, cfg Config) (string, error) {
	bin, err := c.lookPath()
	if err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	args := []string{"stdin", "stdout"}
	if c.Tessdata != "" {
		args = append(args, "--tessdata-dir", c.Tessdata)
	}
	args = append(args, cfg.args()...)
	log.Debug("running tesseract", "binary", bin, "args", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: tesseract failed: %s", ErrUnavailable, msg)
	}

	return stdout.String(), nil
}

// Version returns the first line of `tesseract --version`.
func (c *CLI) Version() (string, error) {
	bin, err := c.lookPath()
	if err != nil {
		return "", err
	}
	out, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

func (c *CLI) lookPath() (string, error) {
	name := c.Binary
	if name == "" {
		name = "tesseract"
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found: %v", ErrUnavailable, name, err)
	}
	return bin, nil
}
