// Package contour turns photographs into closed polygonal boundaries, the raw
// material for screen detection.
//
// A Source produces contours for one image. Two sources are provided:
//
//   - EdgeTracer: pure Go. A Canny-style edge map (see imaging.EdgeMap) is
//     split into 8-connected components, the outer boundary of each component
//     is traced with Moore-neighbour tracing, and straight runs are collapsed
//     to their end points.
//   - GocvSource: OpenCV through gocv. Only available when built with the
//     "gocv" build tag; without it NewGocvSource returns an error.
//
// # Coordinate System
//
// Contour points are pixel centres in the source image's coordinate space,
// so a contour from a sub-image keeps the sub-image's offsets. Bounds follows
// OpenCV's boundingRect: a contour touching columns 10 through 19 has a width
// of 10.
//
// # Retrieval Modes
//
// RetrievalExternal keeps only contours that are not enclosed by another
// contour. RetrievalList keeps every component's outer boundary. Neither mode
// traces hole boundaries.
package contour
