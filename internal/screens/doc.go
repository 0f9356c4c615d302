// Package screens locates powered-off displays in a photograph.
//
// Detection is a strict four stage pipeline, each stage a pure function of
// the previous stage's output:
//
//  1. Extract turns contours into Metrics: bounding box, aspect ratio,
//     blackness and vertical centre. Contours below the pixel noise floor are
//     dropped here.
//  2. Classify marks each one Accepted or Rejected using size, aspect and
//     blackness bounds relative to the image.
//  3. Select averages the vertical centres of the accepted candidates, walks
//     them nearest-first and takes up to MaxScreens that do not overlap an
//     earlier pick.
//  4. Finalize numbers the picks from left to right.
//
// Detector wires the stages to a contour.Source and a Meter, and DetectBatch
// runs a Detector over many images in parallel. Every tuning constant lives
// in Thresholds.
//
// An image with no accepted candidates yields an empty ScreenSelection, not
// an error.
package screens
