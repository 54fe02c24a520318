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

// The six hue anchors, in the order used by [SaturationWeights].
const (
	Red = iota
	Yellow
	Green
	Cyan
	Blue
	Magenta
)

// HueAnchors holds the normalised hue angles (see [HueAngle]) of the sRGB
// primaries and secondaries, in the order red, yellow, green, cyan, blue,
// magenta.  The angles are strictly increasing.
var HueAnchors = [6]float64{
	Red:     HueAngle(f64.Vec3{1, 0, 0}),
	Yellow:  HueAngle(f64.Vec3{1, 1, 0}),
	Green:   HueAngle(f64.Vec3{0, 1, 0}),
	Cyan:    HueAngle(f64.Vec3{0, 1, 1}),
	Blue:    HueAngle(f64.Vec3{0, 0, 1}),
	Magenta: HueAngle(f64.Vec3{1, 0, 1}),
}

// SaturationWeights gives a saturation multiplier for each of the six hue
// anchors.  Between the anchors the multiplier is interpolated linearly
// along the hue circle.
type SaturationWeights [6]float64

// DefaultWeights leaves the saturation of all colours unchanged.
var DefaultWeights = SaturationWeights{1, 1, 1, 1, 1, 1}

// IsDefault reports whether all weights are exactly 1.
func (w *SaturationWeights) IsDefault() bool {
	return *w == DefaultWeights
}

// Thresholds for the saturation limiters, in units of 2·max(|Cb|, |Cr|).
const (
	uvMaxLimit = 0.4375
	grayLow    = 0.0029297
	grayHigh   = 0.01074
)

// interpolateSaturation returns the saturation factor for the normalised
// hue angle h.
func interpolateSaturation(h float64, w *SaturationWeights) float64 {
	for i := Red; i < Magenta; i++ {
		lo, hi := HueAnchors[i], HueAnchors[i+1]
		if h >= lo && h < hi {
			return w[i] + (w[i+1]-w[i])*(h-lo)/(hi-lo)
		}
	}

	// between magenta and red, across the 1.0/0.0 boundary
	delta := h - HueAnchors[Magenta]
	if h < HueAnchors[Red] {
		delta += 1
	}
	span := HueAnchors[Red] + 1 - HueAnchors[Magenta]
	return w[Magenta] + (w[Red]-w[Magenta])*delta/span
}

// limitSaturation restricts a saturation boost for colours close to the
// edge of the colour volume and for colours close to gray.  The argument
// uvMax is 2·max(|Cb|, |Cr|).  Factors up to 1 are returned unchanged.
func limitSaturation(factor, uvMax float64) float64 {
	if factor <= 1 {
		return factor
	}

	if uvMax >= uvMaxLimit {
		return 1
	}
	factor = 1 + (factor-1)*(uvMaxLimit-uvMax)/uvMaxLimit

	dSat := factor - 1
	if uvMax <= grayLow {
		dSat = 0
	} else if uvMax <= grayHigh {
		dSat *= uvMax - grayLow
	}
	return 1 + dSat
}

// ChangePixelSaturation applies the hue-dependent saturation weights to a
// single non-linear RGB colour.  Gray colours, and colours whose
// saturation factor works out as exactly 1, are returned unchanged.
func ChangePixelSaturation(rgb f64.Vec3, w *SaturationWeights) f64.Vec3 {
	if rgb[0] == rgb[1] && rgb[1] == rgb[2] {
		return rgb
	}

	factor := interpolateSaturation(HueAngle(rgb), w)

	ycc := rgbToYCbCr(rgb)
	uvMax := 2 * max(math.Abs(ycc[1]), math.Abs(ycc[2]))
	factor = limitSaturation(factor, uvMax)
	if factor == 1 {
		return rgb
	}

	ycc[1] *= factor
	ycc[2] *= factor
	return ycbcrToRGB(ycc)
}

// PartialSaturationLUT returns a 3D LUT of the given depth which applies
// [ChangePixelSaturation] with weights w to every grid point.
func PartialSaturationLUT(depth int, w *SaturationWeights) (*LUT3D, error) {
	lut := &LUT3D{Depth: depth}
	err := fillSaturationLUT(lut, w)
	if err != nil {
		return nil, err
	}
	return lut, nil
}

func fillSaturationLUT(lut *LUT3D, w *SaturationWeights) error {
	err := lut.alloc()
	if err != nil {
		return err
	}

	scale := float64(lut.Depth - 1)
	fast := w.IsDefault()
	idx := 0
	for r := range lut.Depth {
		for g := range lut.Depth {
			for b := range lut.Depth {
				rgb := f64.Vec3{float64(r) / scale, float64(g) / scale, float64(b) / scale}
				if !fast {
					rgb = ChangePixelSaturation(rgb, w)
				}
				lut.Samples[idx] = rgb
				idx++
			}
		}
	}
	return nil
}
