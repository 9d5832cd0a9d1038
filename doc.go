// Package claheimg implements Contrast Limited Adaptive Histogram
// Equalization (CLAHE) for 8-bit RGB images.
//
// The image is converted to CIE L*a*b*, CLAHE is applied to the L
// channel in tile-local, contrast-clipped histogram space, and the
// result is converted back to RGB. Chromaticity (a, b) passes through
// unchanged in Lab; where the remapped lightness puts a pixel outside the
// sRGB gamut, the conversion back clamps each channel to [0,255], which
// can shift the output hue.
//
// Basic usage:
//
//	out, err := claheimg.Enhance(context.Background(), img, claheimg.DefaultOptions())
package claheimg
