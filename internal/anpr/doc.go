// Package anpr runs the automatic number-plate recognition pipeline for one
// image.
//
// # Stages
//
//  1. Input: decode the image and resize it to ResizeWidth pixels wide
//  2. Preprocessing: grayscale, bilateral smoothing, Canny edges
//  3. Candidate search: contours ranked by area, the first that
//     approximates to a quadrilateral is the plate
//  4. Isolation: mask everything outside the plate polygon to black
//  5. Text extraction: OCR the masked image and keep letters and digits
//  6. Reporting: append a CSV record, print the plate, show the images
//
// A failure in stages 1 to 5 stops the run before anything is recorded.
// A failure to write the CSV record is reported but the plate is still
// printed.
//
// # Errors
//
// Every error returned by Run wraps exactly one of ErrImageRead,
// ErrPlateNotDetected, ErrOCRUnavailable or ErrOutputWrite. Use IsFatal to
// decide the exit status.
package anpr
