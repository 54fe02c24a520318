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
	"fmt"

	"golang.org/x/image/math/f64"
)

// Red-channel multipliers applied by [GammaLUT].
const (
	gammaRedST2084 = 0.962416136
	gammaRedSRGB   = 0.854305832
)

// DegammaLUT fills a 1D LUT block with the sRGB decoding curve.  Sample i
// of N is set to SRGBDecode(i/(N-1)), for every channel of the block.
func DegammaLUT(b *Block) error {
	return fillCurve(b, func(_ int, x float64) float64 {
		return SRGBDecode(x)
	})
}

// EncodeLUT fills a 1D LUT block with the sRGB encoding curve.  Sample i
// of N is set to SRGBEncode(i/(N-1)), for every channel of the block.
func EncodeLUT(b *Block) error {
	return fillCurve(b, func(_ int, x float64) float64 {
		return SRGBEncode(x)
	})
}

// GammaLUT fills a 1D LUT block with a relative correction curve for a
// pipe with output encoding enc.  The curve is the identity ramp, with the
// red channel attenuated by a fixed factor which depends on enc.
// A single-channel LUT applies to all colours and gets the plain ramp.
func GammaLUT(b *Block, enc Encoding) error {
	red := 1.0
	switch enc {
	case EncodingST2084:
		red = gammaRedST2084
	case EncodingSRGB:
		red = gammaRedSRGB
	}
	if b.LUT1D != nil && b.LUT1D.NumChannels == 1 {
		red = 1
	}
	return fillCurve(b, func(ch int, x float64) float64 {
		if ch == 0 {
			return x * red
		}
		return x
	})
}

func fillCurve(b *Block, curve func(ch int, x float64) float64) error {
	if b.Type != OneDLut || b.LUT1D == nil {
		return fmt.Errorf("colorpipe: %s is not a 1D LUT", b)
	}
	lut := b.LUT1D
	err := lut.alloc()
	if err != nil {
		return err
	}

	scale := float64(lut.NumSamples - 1)
	for ch := range lut.NumChannels {
		for i := range lut.NumSamples {
			lut.Set(ch, i, curve(ch, float64(i)/scale))
		}
	}
	return nil
}

// ContrastCSC returns the payload of a matrix-with-offsets block which
// scales all channels by 1.2.  The pre- and post-offsets are 1 for the red
// channel and 0 for green and blue.
func ContrastCSC() *Matrix {
	return &Matrix{
		M: f64.Mat3{
			1.2, 0, 0,
			0, 1.2, 0,
			0, 0, 1.2,
		},
		Pre:  f64.Vec3{1, 0, 0},
		Post: f64.Vec3{1, 0, 0},
	}
}

// IdentityCSC returns a matrix payload which leaves colours unchanged.
func IdentityCSC() *Matrix {
	return &Matrix{M: identity3}
}

// HueSaturationCSC returns a matrix payload for [HueSaturationMatrix].
func HueSaturationCSC(hue, sat float64) *Matrix {
	return &Matrix{M: HueSaturationMatrix(hue, sat)}
}

// setMatrix attaches a matrix payload to a matrix block.
func setMatrix(b *Block, m *Matrix) error {
	if b.Type != Matrix3x3 && b.Type != Matrix3x3WithOffsets {
		return fmt.Errorf("colorpipe: %s is not a matrix", b)
	}
	if b.Type == Matrix3x3 && (m.Pre != f64.Vec3{} || m.Post != f64.Vec3{}) {
		return fmt.Errorf("colorpipe: %s does not support offsets", b)
	}
	b.Matrix = m
	return nil
}
