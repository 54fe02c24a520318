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

// Package colorpipe configures the colour-processing pipeline of a GPU
// display output.
//
// A display pipe exposes an ordered list of hardware colour-transform
// blocks: 1D LUTs, 3×3 matrices, 3×3 matrices with offsets and 3D LUTs.
// The position of a block in the list determines its role; a 1D LUT
// directly followed by a matrix with offsets is the degamma LUT feeding the
// colour-space conversion (CSC), and so on.  This package classifies the
// blocks reported by the driver and synthesises their numeric content.
//
// # Pipeline Operations
//
// Create a [Pipeline] for a [Driver] and call one of its operations:
//
//	p := colorpipe.New(drv, colorpipe.WithLogger(logger))
//	err := p.ApplyHueSaturation(display, 370, 50)
//	if err != nil {
//	    // handle error
//	}
//
// Every operation fetches the pipeline topology afresh, builds the payloads
// and submits all blocks in a single driver call.  Nothing is cached
// between calls.
//
// # Payload Generators
//
// The generators are also usable on their own.  [HueSaturationMatrix]
// computes a 3×3 matrix for hue rotation and saturation scaling,
// [PartialSaturationLUT] computes a 3D LUT which adjusts saturation
// separately for six hue ranges, and [DegammaLUT], [GammaLUT] and
// [EncodeLUT] fill 1D LUTs.
package colorpipe

import "fmt"

// Display is an opaque handle for one display output.
// The value is only interpreted by the [Driver].
type Display uintptr

// Encoding is the pixel encoding of a display pipe's output.
type Encoding int

// Output encodings relevant for gamma LUT generation.
const (
	EncodingUnknown Encoding = iota
	EncodingSRGB
	EncodingST2084
	EncodingLinear
)

func (e Encoding) String() string {
	switch e {
	case EncodingSRGB:
		return "sRGB"
	case EncodingST2084:
		return "ST2084"
	case EncodingLinear:
		return "linear"
	case EncodingUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// BlockType identifies the kind of hardware colour-transform stage.
type BlockType int

// The block types a display pipe can expose.
const (
	OneDLut BlockType = iota + 1
	Matrix3x3
	Matrix3x3WithOffsets
	ThreeDLut
)

func (t BlockType) String() string {
	switch t {
	case OneDLut:
		return "1D LUT"
	case Matrix3x3:
		return "3x3 matrix"
	case Matrix3x3WithOffsets:
		return "3x3 matrix with offsets"
	case ThreeDLut:
		return "3D LUT"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// SamplingType describes how the samples of a 1D LUT are distributed over
// the input range.
type SamplingType int

// Sampling types reported by the driver.
const (
	SamplingUniform SamplingType = iota
	SamplingNonUniform
)

func (s SamplingType) String() string {
	switch s {
	case SamplingUniform:
		return "uniform"
	case SamplingNonUniform:
		return "non-uniform"
	default:
		return fmt.Sprintf("SamplingType(%d)", int(s))
	}
}
