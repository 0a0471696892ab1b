package anpr

import "errors"

var (
	// ErrImageRead covers missing, unreadable or undecodable input images.
	ErrImageRead = errors.New("failed to read image")

	// ErrPlateNotDetected means no candidate contour had four vertices.
	ErrPlateNotDetected = errors.New("no plate detected")

	// ErrOCRUnavailable means the OCR engine could not start or failed.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrOutputWrite means the CSV record could not be written.
	ErrOutputWrite = errors.New("failed to write output")
)

// IsFatal reports whether err should end the program with a failure status.
// Only output write errors are not fatal.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrOutputWrite)
}
