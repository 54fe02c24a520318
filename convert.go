// seehuhn.de/go/colorpipe - configure display colour pipelines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package colorpipe

import (
	"math"

	"golang.org/x/image/math/f64"
)

// BT.709 luma coefficients
const (
	kr = 0.2126
	kb = 0.0722
	kg = 1 - kr - kb
)

// rgbToYCbCrMatrix converts non-linear RGB to BT.709 YCbCr, with Cb and Cr
// centred on zero and in the range [-0.5, 0.5].
var rgbToYCbCrMatrix = f64.Mat3{
	kr, kg, kb,
	-kr / (2 * (1 - kb)), -kg / (2 * (1 - kb)), 0.5,
	0.5, -kg / (2 * (1 - kr)), -kb / (2 * (1 - kr)),
}

// ycbcrToRGBMatrix is the inverse of rgbToYCbCrMatrix.
var ycbcrToRGBMatrix = mustInvert(&rgbToYCbCrMatrix)

// rgbToXYZMatrix converts linear sRGB (D65) to CIE XYZ, scaled so that
// white has Y = 100.
var rgbToXYZMatrix = f64.Mat3{
	41.24564, 35.75761, 18.04375,
	21.26729, 71.51522, 7.21750,
	1.93339, 11.91920, 95.03041,
}

// d65WhitePoint is the XYZ reference white used for the hue computation.
var d65WhitePoint = f64.Vec3{95.0489, 100.0, 108.8840}

func mustInvert(m *f64.Mat3) f64.Mat3 {
	inv, ok := invertMatrix(m)
	if !ok {
		panic("colorpipe: singular colour matrix")
	}
	return inv
}

func rgbToYCbCr(rgb f64.Vec3) f64.Vec3 {
	return mulMatVec(&rgbToYCbCrMatrix, rgb)
}

// ycbcrToRGB converts back to RGB.  The result is clamped to [0, 1].
func ycbcrToRGB(ycc f64.Vec3) f64.Vec3 {
	rgb := mulMatVec(&ycbcrToRGBMatrix, ycc)
	for i := range rgb {
		rgb[i] = clamp(rgb[i], 0, 1)
	}
	return rgb
}

// rgbToXYZ converts linear RGB to XYZ (Y in [0, 100]).
func rgbToXYZ(rgb f64.Vec3) f64.Vec3 {
	return mulMatVec(&rgbToXYZMatrix, rgb)
}

// xyzToLab converts XYZ to CIE L*a*b* relative to the given white point.
func xyzToLab(xyz, white f64.Vec3) f64.Vec3 {
	fx := labF(xyz[0] / white[0])
	fy := labF(xyz[1] / white[1])
	fz := labF(xyz[2] / white[2])

	return f64.Vec3{
		116*fy - 16,
		500 * (fx - fy),
		200 * (fy - fz),
	}
}

// HueAngle returns the CIE L*a*b* hue angle of an sRGB colour, normalised
// to the range [0, 1).  The components of rgb are non-linear sRGB values
// in [0, 1].
func HueAngle(rgb f64.Vec3) float64 {
	lin := f64.Vec3{SRGBDecode(rgb[0]), SRGBDecode(rgb[1]), SRGBDecode(rgb[2])}
	lab := xyzToLab(rgbToXYZ(lin), d65WhitePoint)

	h := math.Atan2(lab[2], lab[1])
	if h < 0 {
		h += 2 * math.Pi
	}
	h /= 2 * math.Pi
	if h >= 1 {
		// h+2π can round up to exactly 2π
		h = 0
	}
	return h
}
