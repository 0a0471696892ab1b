// Package imaging provides the pixel-level stages of the plate reader.
//
// This package loads and resizes the input photograph, converts it to
// grayscale, smooths it with an edge-preserving bilateral filter, runs Canny
// edge detection, and isolates the plate region with a polygon mask. Deskew
// optionally straightens a tilted photo before the plate search. It also
// carries the small helpers the reporter needs: dominant-colour sampling,
// plate cropping, and debug snapshots.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Every stage returns a
// new image whose bounds start at (0,0); no stage mutates its input.
//
// # Determinism
//
// Grayscale, Bilateral and Canny are pure functions of their input and
// parameters. Running them twice on the same image yields byte-identical
// pixel buffers.
//
// # Binary Images
//
// Edge maps and masks are *image.Gray values holding only 0 and 255.
//
// # Error Handling
//
// Load wraps I/O and decode failures. The transforms themselves cannot fail
// on a decoded image and return no error.
package imaging
