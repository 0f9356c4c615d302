// Package imaging provides the pixel-level operations behind screen detection:
// decoding and caching photographs, Canny-style edge maps, region blackness
// metrics, cropping, and debug overlays.
//
// # Coordinate System
//
// Regions are image.Rectangle values in the source image's own coordinate
// space: Min is inclusive, Max is exclusive, X grows rightward and Y grows
// downward. Sub-images with a non-zero origin are handled throughout, except
// EdgeMap, which always returns a map anchored at (0,0).
//
// # Blackness
//
// Blackness is reported on a 0-100 scale where 100 is pure black. Four
// methods are available (luminance, rgb_sum, hsv_value, euclidean); the
// detector defaults to luminance. AnalyzeBlackness reports every method plus
// near-black pixel ratios and a screen-off verdict.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their input images.
//
// # Performance Considerations
//
// Cached photographs stay in memory until Evict or Clear. Long batch runs
// should evict each image once it has been processed.
package imaging
