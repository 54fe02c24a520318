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

import "math"

// SRGBDecode maps a non-linear sRGB value in [0, 1] to linear light,
// following IEC 61966-2-1.
func SRGBDecode(x float64) float64 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// SRGBEncode maps a linear-light value in [0, 1] to the non-linear sRGB
// encoding.  This is the inverse of [SRGBDecode].
func SRGBEncode(x float64) float64 {
	if x <= 0.0031308 {
		return x * 12.92
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// labF is the CIE L*a*b* companding function.
func labF(t float64) float64 {
	// threshold (6/29)^3
	if t > 216.0/24389.0 {
		return math.Cbrt(t)
	}
	// t·(29/6)²/3 + 4/29
	return t*(841.0/108.0) + 4.0/29.0
}
