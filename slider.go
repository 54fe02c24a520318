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

// MapSaturation converts a saturation slider position to a saturation
// factor.  Slider positions 0 to 100 map to factors 0.01 to 2.01.
func MapSaturation(slider int) float64 {
	return 0.01 + float64(slider)*0.02
}

// MapHue converts a hue slider position to a hue angle in degrees,
// wrapping it into the range [0, 360).
func MapHue(slider int) int {
	return (slider%360 + 360) % 360
}
