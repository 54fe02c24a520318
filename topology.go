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

// Chain gives the positions of the degamma LUT, the colour-space
// conversion matrix and (optionally) the gamma LUT within a topology.
// GammaLUT is -1 if the gamma LUT was not requested.
type Chain struct {
	DegammaLUT int
	CSC        int
	GammaLUT   int
}

// ResolveChain locates the first degamma LUT which is directly followed by
// a matrix with offsets.  If withGamma is true, the matrix must in turn be
// followed by a 1D LUT, which becomes the gamma LUT.
func ResolveChain(t *Topology, withGamma bool) (Chain, error) {
	bb := t.Blocks
	for i := 0; i+1 < len(bb); i++ {
		if bb[i].Type != OneDLut || bb[i+1].Type != Matrix3x3WithOffsets {
			continue
		}
		if !withGamma {
			return Chain{DegammaLUT: i, CSC: i + 1, GammaLUT: -1}, nil
		}
		if i+2 < len(bb) && bb[i+2].Type == OneDLut {
			return Chain{DegammaLUT: i, CSC: i + 1, GammaLUT: i + 2}, nil
		}
	}

	if withGamma {
		return Chain{}, unresolved(t, "degamma/CSC/gamma chain")
	}
	return Chain{}, unresolved(t, "degamma/CSC pair")
}

// ResolveTrailingGamma returns the position of the last 1D LUT.
// HDR pipes may expose a gamma LUT without an adjacent CSC.
func ResolveTrailingGamma(t *Topology) (int, error) {
	for i := len(t.Blocks) - 1; i >= 0; i-- {
		if t.Blocks[i].Type == OneDLut {
			return i, nil
		}
	}
	return -1, unresolved(t, "gamma LUT")
}

// ResolveHueSaturation returns the position of the first 3×3 matrix
// without offsets.
func ResolveHueSaturation(t *Topology) (int, error) {
	return first(t, Matrix3x3, "hue/saturation matrix")
}

// Resolve3DLut returns the position of the first 3D LUT.
func Resolve3DLut(t *Topology) (int, error) {
	return first(t, ThreeDLut, "3D LUT")
}

func first(t *Topology, tp BlockType, pattern string) (int, error) {
	for i, b := range t.Blocks {
		if b.Type == tp {
			return i, nil
		}
	}
	return -1, unresolved(t, pattern)
}
