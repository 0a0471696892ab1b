package anpr

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/ironsheep/plate-reader/internal/config"
	"github.com/ironsheep/plate-reader/internal/detection"
	"github.com/ironsheep/plate-reader/internal/display"
	"github.com/ironsheep/plate-reader/internal/imaging"
	"github.com/ironsheep/plate-reader/internal/log"
	"github.com/ironsheep/plate-reader/internal/ocr"
	"github.com/ironsheep/plate-reader/internal/record"
	"github.com/ironsheep/plate-reader/internal/vision"
)

// Preprocessing parameters.
const (
	ResizeWidth         = 500
	BilateralDiameter   = 11
	BilateralSigmaColor = 17
	BilateralSigmaSpace = 17
	CannyLow            = 170
	CannyHigh           = 200
)

// Window titles used when showing results.
const (
	TitleOriginal = "Original Image"
	TitlePlate    = "Plate Region"
)

// Detection describes the accepted plate region.
type Detection struct {
	// Polygon is the four-vertex approximation, in resized-image pixels.
	Polygon detection.Contour

	// Bounds is the bounding box of Polygon.
	Bounds image.Rectangle

	// Area is the area enclosed by Polygon.
	Area float64

	// Color is the dominant colour inside the plate, nil if it could not
	// be sampled.
	Color *imaging.ColorFrequency
}

// Result is the outcome of a run that reached OCR.
type Result struct {
	Plate     string
	Raw       string
	Time      time.Time
	Detection Detection

	// Skew is the rotation removed before the search, in degrees. Zero
	// unless deskewing was requested.
	Skew   float64
	Masked image.Image
}

// Deps are the collaborators a Pipeline uses. Zero fields get defaults.
type Deps struct {
	Ops        vision.Ops
	Recognizer ocr.TextRecognizer
	Viewer     display.Viewer
	Stdout     io.Writer
	Now        func() time.Time
}

// Pipeline processes one image according to a Config.
type Pipeline struct {
	cfg  config.Config
	deps Deps
}

// New returns a Pipeline for cfg.
//
// A nil Recognizer is created from cfg.Engine on first use. A nil Viewer
// means Nop when cfg.NoDisplay is set and the platform viewer otherwise.
func New(cfg config.Config, deps Deps) *Pipeline {
	if deps.Ops == nil {
		deps.Ops = vision.Default()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Viewer == nil {
		if cfg.NoDisplay {
			deps.Viewer = display.Nop{}
		} else {
			deps.Viewer = display.Default(os.Stdin, os.Stderr)
		}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// Run executes every stage once.
//
// On success the plate text has been printed and recorded. If only the
// record could not be written, Run returns both the Result and an error
// wrapping ErrOutputWrite.
func (p *Pipeline) Run() (*Result, error) {
	ops := p.deps.Ops
	log.Debug("starting", "image", p.cfg.ImagePath, "backend", ops.Name())

	img, err := ops.Decode(p.cfg.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
	}
	resized, err := ops.Resize(img, ResizeWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
	}
	if info, err := imaging.Inspect(p.cfg.ImagePath, img); err == nil {
		log.Debug("loaded image", "format", info.Format, "bytes", info.FileSizeBytes,
			"width", info.Width, "height", info.Height, "resized", resized.Bounds().Size())
	}

	var skew float64
	if p.cfg.Deskew {
		if resized, skew, err = ops.Deskew(resized); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		log.Debug("deskewed", "angle", skew)
	}

	gray, smoothed, edges, err := p.preprocess(resized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
	}

	det, err := p.locate(edges)
	if err != nil {
		p.writeSnapshots(resized, gray, smoothed, edges, nil)
		return nil, err
	}

	mask, err := ops.Mask(resized.Bounds(), det.Polygon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlateNotDetected, err)
	}
	masked, err := ops.And(resized, mask)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlateNotDetected, err)
	}

	if c, err := imaging.DominantColor(resized, mask); err != nil {
		log.Warn("could not sample plate colour", "error", err)
	} else {
		det.Color = c
		log.Debug("plate colour", "hex", c.Hex, "share", c.Percentage)
	}

	p.writeSnapshots(resized, gray, smoothed, edges, masked)
	p.savePlate(masked, det.Bounds)

	raw, err := p.recognize(masked)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Plate:     ocr.Clean(raw),
		Raw:       raw,
		Time:      p.deps.Now(),
		Detection: *det,
		Skew:      skew,
		Masked:    masked,
	}
	log.Debug("recognised", "raw", raw, "plate", res.Plate)

	writeErr := p.record(res)

	fmt.Fprintln(p.deps.Stdout, res.Plate)
	if p.cfg.ShowLog && writeErr == nil {
		p.printLog()
	}

	if !p.cfg.NoDisplay {
		p.show(resized, masked)
	}

	return res, writeErr
}

func (p *Pipeline) preprocess(resized image.Image) (gray, smoothed, edges *image.Gray, err error) {
	ops := p.deps.Ops
	if gray, err = ops.Grayscale(resized); err != nil {
		return nil, nil, nil, err
	}
	if smoothed, err = ops.Smooth(gray, BilateralDiameter, BilateralSigmaColor, BilateralSigmaSpace); err != nil {
		return nil, nil, nil, err
	}
	if edges, err = ops.Edges(smoothed, CannyLow, CannyHigh); err != nil {
		return nil, nil, nil, err
	}
	return gray, smoothed, edges, nil
}

func (p *Pipeline) locate(edges *image.Gray) (*Detection, error) {
	ops := p.deps.Ops
	contours, err := ops.FindContours(edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlateNotDetected, err)
	}
	candidates := detection.RankByArea(contours, detection.MaxCandidates)
	log.Debug("contours", "found", len(contours), "candidates", len(candidates))

	quad, err := detection.FindQuad(candidates, ops.ApproxPolygon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlateNotDetected, err)
	}

	det := &Detection{
		Polygon: quad,
		Bounds:  detection.BoundingBox(quad),
		Area:    detection.ContourArea(quad),
	}
	log.Debug("plate polygon", "points", fmt.Sprint([]image.Point(quad)), "bounds", det.Bounds, "area", det.Area)
	return det, nil
}

func (p *Pipeline) recognize(masked image.Image) (string, error) {
	rec := p.deps.Recognizer
	if rec == nil {
		r, err := ocr.New(p.cfg.Engine, p.cfg.Tessdata)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
		}
		rec = r
	}

	raw, err := rec.Recognize(masked, p.cfg.OCR)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}
	return raw, nil
}

func (p *Pipeline) record(res *Result) error {
	w := record.NewWriter(p.cfg.OutputPath, p.cfg.Mode)
	if err := w.Write(record.Record{Time: res.Time, Plate: res.Plate}); err != nil {
		log.Error("could not record plate", "path", w.Path(), "error", err)
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	log.Info("recorded plate", "path", w.Path(), "mode", p.cfg.Mode)
	return nil
}

func (p *Pipeline) printLog() {
	records, err := record.ReadAll(p.cfg.OutputPath)
	if err != nil {
		log.Warn("could not read plate log", "path", p.cfg.OutputPath, "error", err)
		return
	}
	for _, r := range records {
		fmt.Fprintf(p.deps.Stdout, "%s  %s\n", r.Time.Format(record.TimeLayout), r.Plate)
	}
}

func (p *Pipeline) writeSnapshots(resized image.Image, gray, smoothed, edges *image.Gray, masked image.Image) {
	if p.cfg.DebugDir == "" {
		return
	}
	snaps := []imaging.Snapshot{
		{Name: "resized", Image: resized},
		{Name: "gray", Image: gray},
		{Name: "smoothed", Image: smoothed},
		{Name: "edges", Image: edges},
	}
	if masked != nil {
		snaps = append(snaps, imaging.Snapshot{Name: "masked", Image: masked})
	}
	paths, err := imaging.WriteSnapshots(p.cfg.DebugDir, snaps)
	if err != nil {
		log.Warn("could not write debug images", "dir", p.cfg.DebugDir, "error", err)
		return
	}
	log.Debug("wrote debug images", "count", len(paths), "dir", p.cfg.DebugDir)
}

func (p *Pipeline) savePlate(masked image.Image, bounds image.Rectangle) {
	path := p.cfg.PlatePath()
	if path == "" {
		return
	}
	crop, err := imaging.Crop(masked, bounds)
	if err == nil {
		err = imaging.Save(path, crop)
	}
	if err != nil {
		log.Warn("could not save plate crop", "path", path, "error", err)
		return
	}
	log.Info("saved plate crop", "path", path)
}

func (p *Pipeline) show(original, masked image.Image) {
	v := p.deps.Viewer
	if err := v.Show(TitleOriginal, original); err != nil {
		log.Warn("could not show image", "title", TitleOriginal, "error", err)
	}
	if err := v.Show(TitlePlate, masked); err != nil {
		log.Warn("could not show image", "title", TitlePlate, "error", err)
	}
	if err := v.Wait(); err != nil {
		log.Warn("viewer wait failed", "error", err)
	}
}
