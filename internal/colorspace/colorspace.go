// Package colorspace converts between 8-bit sRGB and floating-point CIE
// L*a*b* (D65), matching the constants used by widely-deployed
// computer-vision libraries rather than the generic CIE D65 white point.
//
// Reference: OpenCV's cv::cvtColor(COLOR_RGB2Lab)/COLOR_Lab2RGB constant
// tables (src/imgproc/color_lab.cpp), re-derived here in plain Go.
package colorspace

import "math"

// D65 white point as normalized by the reference library. These differ
// in the last two digits from the generic CIE D65 primaries (0.95047,
// 1.0, 1.08883) used by most colorimetry packages; matching this exact
// library bit-for-bit requires using its constants, not a textbook D65.
const (
	whiteX = 0.950456
	whiteY = 1.0
	whiteZ = 1.088754
)

// forward is the linear-sRGB -> XYZ matrix (row-major, applied as M*rgb).
var forward = [3][3]float64{
	{0.412453, 0.357580, 0.180423},
	{0.212671, 0.715160, 0.072169},
	{0.019334, 0.119193, 0.950227},
}

// inverse is the XYZ -> linear-sRGB matrix (row-major, applied as M*xyz).
var inverse = [3][3]float64{
	{3.240479, -1.537150, -0.498535},
	{-0.969256, 1.875992, 0.041556},
	{0.055648, -0.204043, 1.057311},
}

// Lab holds one pixel's L*a*b* coordinates. L is nominally [0,100]; a and
// b are not clamped and carry through the pipeline unmodified.
type Lab struct {
	L, A, B float32
}

// gammaExpand applies inverse sRGB companding to a single channel in [0,1].
func gammaExpand(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// gammaCompress applies sRGB companding to a single linear channel in [0,1].
func gammaCompress(u float64) float64 {
	if u > 0.0031308 {
		return 1.055*math.Pow(u, 1.0/2.4) - 0.055
	}
	return 12.92 * u
}

// fLab is the CIE Lab nonlinearity f(t).
func fLab(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// fLabInv is the inverse of fLab: it cubes t above 0.206893 (the cube
// root of fLab's 0.008856 threshold) and inverts the linear segment below.
func fLabInv(t float64) float64 {
	if t > 0.206893 {
		return t * t * t
	}
	return (t - 16.0/116.0) / 7.787
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// RGBToLab converts one 8-bit sRGB pixel to floating-point Lab.
func RGBToLab(r, g, b uint8) Lab {
	rl := gammaExpand(float64(r) / 255)
	gl := gammaExpand(float64(g) / 255)
	bl := gammaExpand(float64(b) / 255)

	x := forward[0][0]*rl + forward[0][1]*gl + forward[0][2]*bl
	y := forward[1][0]*rl + forward[1][1]*gl + forward[1][2]*bl
	z := forward[2][0]*rl + forward[2][1]*gl + forward[2][2]*bl

	x /= whiteX
	y /= whiteY
	z /= whiteZ

	fx, fy, fz := fLab(x), fLab(y), fLab(z)

	return Lab{
		L: float32(116*fy - 16),
		A: float32(500 * (fx - fy)),
		B: float32(200 * (fy - fz)),
	}
}

// LabToRGB converts one floating-point Lab pixel back to 8-bit sRGB,
// clamping out-of-gamut results to [0,255].
func LabToRGB(c Lab) (r, g, b uint8) {
	fy := (float64(c.L) + 16) / 116
	fx := fy + float64(c.A)/500
	fz := fy - float64(c.B)/200

	x := fLabInv(fx) * whiteX
	y := fLabInv(fy) * whiteY
	z := fLabInv(fz) * whiteZ

	rl := inverse[0][0]*x + inverse[0][1]*y + inverse[0][2]*z
	gl := inverse[1][0]*x + inverse[1][1]*y + inverse[1][2]*z
	bl := inverse[2][0]*x + inverse[2][1]*y + inverse[2][2]*z

	rs := gammaCompress(clamp01(rl))
	gs := gammaCompress(clamp01(gl))
	bs := gammaCompress(clamp01(bl))

	return clampByte(rs * 255), clampByte(gs * 255), clampByte(bs * 255)
}

// QuantizeL scales an L* value in [0,100] (nominal; may fall slightly
// outside) into the 8-bit [0,255] range the CLAHE engine operates on.
func QuantizeL(l float32) uint8 {
	v := float64(l) * 255 / 100
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// DequantizeL is the inverse of QuantizeL.
func DequantizeL(v uint8) float32 {
	return float32(v) * 100 / 255
}
