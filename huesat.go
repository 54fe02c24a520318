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

// Limits for the hue/saturation matrix parameters.
const (
	MaxHue        = 359.0
	MaxSaturation = 2.5
)

// HueSaturationMatrix returns a 3×3 matrix which rotates the hue of a
// non-linear RGB colour by hue degrees and scales its saturation by the
// factor sat.  Both operations act on the chroma plane of BT.709 YCbCr;
// luma is unchanged.
//
// The hue is clamped to [0, 359] and the saturation to [0, 2.5].
// If both hue and sat are zero, the identity matrix is returned.
func HueSaturationMatrix(hue, sat float64) f64.Mat3 {
	if hue == 0 && sat == 0 {
		return identity3
	}

	hue = clamp(hue, 0, MaxHue)
	sat = clamp(sat, 0, MaxSaturation)

	theta := hue * math.Pi / 180
	sin, cos := math.Sincos(theta)
	rotation := f64.Mat3{
		1, 0, 0,
		0, cos, -sin,
		0, sin, cos,
	}
	scale := f64.Mat3{
		1, 0, 0,
		0, sat, 0,
		0, 0, sat,
	}

	m := mulMat(&rotation, &rgbToYCbCrMatrix)
	m = mulMat(&scale, &m)
	return mulMat(&ycbcrToRGBMatrix, &m)
}
