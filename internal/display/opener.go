package display

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/ironsheep/plate-reader/internal/imaging"
	"github.com/ironsheep/plate-reader/internal/log"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Opener shows images with the desktop's default image viewer.
type Opener struct {
	// In is read for the Enter key in Wait.
	In io.Reader

	// Out receives the prompt printed by Wait.
	Out io.Writer

	// Launch opens path in a viewer without waiting for it to exit.
	// Defaults to the platform opener.
	Launch func(path string) error

	dir   string
	shown []string
}

// NewOpener returns an Opener prompting on out and reading from in.
func NewOpener(in io.Reader, out io.Writer) *Opener {
	return &Opener{In: in, Out: out, Launch: launchPlatform}
}

// Show writes img to a temporary PNG and opens it.
func (o *Opener) Show(title string, img image.Image) error {
	if o.dir == "" {
		dir, err := os.MkdirTemp("", "plate-reader-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		o.dir = dir
	}

	name := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if name == "" {
		name = "image"
	}
	path := filepath.Join(o.dir, fmt.Sprintf("%02d-%s.png", len(o.shown)+1, name))
	if err := imaging.Save(path, img); err != nil {
		return err
	}

	launch := o.Launch
	if launch == nil {
		launch = launchPlatform
	}
	if err := launch(path); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to open %s: %w", title, err)
	}
	o.shown = append(o.shown, path)
	log.Debug("opened image", "title", title, "path", path)
	return nil
}

// Wait prompts for Enter, then deletes the temporary files. It returns at
// once when no image was opened.
func (o *Opener) Wait() error {
	defer o.cleanup()
	if len(o.shown) == 0 {
		return nil
	}

	if o.Out != nil {
		fmt.Fprint(o.Out, "Press Enter to close the images...")
	}
	if o.In == nil {
		return nil
	}
	if _, err := bufio.NewReader(o.In).ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	return nil
}

func (o *Opener) cleanup() {
	if o.dir != "" {
		os.RemoveAll(o.dir)
	}
	o.dir = ""
	o.shown = nil
}

// launchPlatform starts the operating system's file opener on path.
func launchPlatform(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
