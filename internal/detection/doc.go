// Package detection finds the plate-shaped region in a binary edge map.
//
// The search follows the classic contour pipeline:
//
//  1. Contour Finding: trace every border in the edge map with Suzuki-Abe
//     border following. Outer and hole borders are both returned as a flat
//     list; the nesting hierarchy is discarded.
//  2. Ranking: sort contours by enclosed area (shoelace formula), largest
//     first, and keep a fixed number of candidates.
//  3. Polygon Approximation: reduce each candidate with Douglas-Peucker,
//     using a tolerance relative to the contour's perimeter.
//  4. Selection: the first candidate whose approximation has exactly four
//     vertices is the plate. No aspect-ratio or rectangularity check is made.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Contour Representation
//
// A Contour is a closed chain of pixel coordinates. Runs of points moving in
// the same direction are compressed to their end points, so a straight
// border is stored as its two corners.
//
// # Limitations
//
// Works best on clean, high-contrast edges. A plate whose border is broken
// by glare or occlusion yields an open curve whose area is near zero, and
// it will lose the ranking to any closed shape.
package detection
