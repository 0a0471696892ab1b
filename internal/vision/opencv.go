//go:build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/ironsheep/plate-reader/internal/detection"
	"github.com/ironsheep/plate-reader/internal/imaging"
)

// OpenCV implements Ops on top of gocv.
//
// Each call converts its inputs to gocv.Mat values, runs the OpenCV routine
// and converts the result back, so no Mat outlives a single call.
type OpenCV struct{}

// minSkew is the smallest correction Deskew applies, in degrees.
const minSkew = 0.1

// NewOpenCV returns the OpenCV backend.
func NewOpenCV() *OpenCV {
	return &OpenCV{}
}

// Name reports the linked OpenCV version.
func (o *OpenCV) Name() string {
	return "opencv " + gocv.OpenCVVersion()
}

// Decode reads path with IMRead.
func (o *OpenCV) Decode(path string) (image.Image, error) {
	m := gocv.IMRead(path, gocv.IMReadColor)
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("failed to decode image: %s", path)
	}
	img, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return img, nil
}

// Resize scales img to width with area interpolation.
func (o *OpenCV) Resize(img image.Image, width int) (image.Image, error) {
	b := img.Bounds()
	if width <= 0 || b.Dx() == width {
		return img, nil
	}
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	height := int(float64(b.Dy())*float64(width)/float64(b.Dx()) + 0.5)
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationArea)

	return matToImage(dst)
}

// Deskew thresholds img with Otsu, fits the minimum-area rectangle around
// the non-zero pixels and warps the image about that rectangle's centre.
func (o *OpenCV) Deskew(img image.Image) (image.Image, float64, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	bw := gocv.NewMat()
	defer bw.Close()
	gocv.Threshold(gray, &bw, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	idx := gocv.NewMat()
	defer idx.Close()
	gocv.FindNonZero(bw, &idx)
	if idx.Rows() < 3 {
		return img, 0, nil
	}

	pts := make([]image.Point, idx.Rows())
	for i := range pts {
		v := idx.GetVeciAt(i, 0)
		pts[i] = image.Pt(int(v[0]), int(v[1]))
	}
	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()

	box := gocv.MinAreaRect(pv)
	angle := box.Angle
	for angle > 45 {
		angle -= 90
	}
	for angle <= -45 {
		angle += 90
	}
	if math.Abs(angle) < minSkew {
		return img, 0, nil
	}

	rot := gocv.GetRotationMatrix2D(box.Center, angle, 1)
	defer rot.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(src, &dst, rot, image.Pt(src.Cols(), src.Rows()),
		gocv.InterpolationCubic, gocv.BorderConstant, color.RGBA{0, 0, 0, 255})

	out, err := matToImage(dst)
	if err != nil {
		return nil, 0, err
	}
	return out, angle, nil
}

// Grayscale converts img with CvtColor.
func (o *OpenCV) Grayscale(img image.Image) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)

	return matToGray(dst)
}

// Smooth runs BilateralFilter.
func (o *OpenCV) Smooth(gray *image.Gray, diameter int, sigmaColor, sigmaSpace float64) (*image.Gray, error) {
	src, err := gocv.ImageGrayToMatGray(imaging.ToGray(gray))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.BilateralFilter(src, &dst, diameter, sigmaColor, sigmaSpace)

	return matToGray(dst)
}

// Edges runs Canny.
func (o *OpenCV) Edges(gray *image.Gray, low, high float64) (*image.Gray, error) {
	src, err := gocv.ImageGrayToMatGray(imaging.ToGray(gray))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Canny(src, &dst, float32(low), float32(high))

	return matToGray(dst)
}

// FindContours lists every border with simple chain approximation.
func (o *OpenCV) FindContours(edges *image.Gray) ([]detection.Contour, error) {
	src, err := gocv.ImageGrayToMatGray(imaging.ToGray(edges))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	pvs := gocv.FindContours(src, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer pvs.Close()

	offset := edges.Bounds().Min
	contours := make([]detection.Contour, 0, pvs.Size())
	for i := 0; i < pvs.Size(); i++ {
		pts := pvs.At(i).ToPoints()
		c := make(detection.Contour, len(pts))
		for j, p := range pts {
			c[j] = p.Add(offset)
		}
		contours = append(contours, c)
	}
	return contours, nil
}

// ApproxPolygon runs ApproxPolyDP on a closed curve.
func (o *OpenCV) ApproxPolygon(c detection.Contour, epsilon float64) detection.Contour {
	if len(c) == 0 {
		return nil
	}
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	approx := gocv.ApproxPolyDP(pv, epsilon, true)
	defer approx.Close()

	return detection.Contour(approx.ToPoints())
}

// Mask fills poly into a zeroed single-channel Mat.
func (o *OpenCV) Mask(bounds image.Rectangle, poly detection.Contour) (*image.Gray, error) {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8U)
	defer m.Close()

	if len(poly) >= 3 {
		shifted := make([]image.Point, len(poly))
		for i, p := range poly {
			shifted[i] = p.Sub(bounds.Min)
		}
		pvs := gocv.NewPointsVectorFromPoints([][]image.Point{shifted})
		defer pvs.Close()
		gocv.DrawContours(&m, pvs, -1, color.RGBA{255, 255, 255, 255}, -1)
	}

	return matToGray(m)
}

// And is BitwiseAndWithMask of img with itself into a zeroed Mat.
func (o *OpenCV) And(img image.Image, mask *image.Gray) (image.Image, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	m, err := gocv.ImageGrayToMatGray(imaging.ToGray(mask))
	if err != nil {
		return nil, fmt.Errorf("failed to convert mask: %w", err)
	}
	defer m.Close()

	dst := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), src.Rows(), src.Cols(), gocv.MatTypeCV8UC3)
	defer dst.Close()
	gocv.BitwiseAndWithMask(src, src, &dst, m)

	return matToImage(dst)
}

// matToImage converts a Mat back into an image.Image.
func matToImage(m gocv.Mat) (image.Image, error) {
	img, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return img, nil
}

// matToGray converts a single-channel Mat into an *image.Gray.
func matToGray(m gocv.Mat) (*image.Gray, error) {
	img, err := matToImage(m)
	if err != nil {
		return nil, err
	}
	return imaging.ToGray(img), nil
}
