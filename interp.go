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

import "golang.org/x/image/math/f64"

// Apply evaluates the block in software.  Blocks without payload, or
// whose samples have been released, act as the identity.
func (b *Block) Apply(rgb f64.Vec3) f64.Vec3 {
	switch b.Type {
	case OneDLut:
		if b.LUT1D != nil && b.LUT1D.Samples != nil {
			return b.LUT1D.Apply(rgb)
		}
	case Matrix3x3, Matrix3x3WithOffsets:
		if b.Matrix != nil {
			return b.Matrix.Apply(rgb)
		}
	case ThreeDLut:
		if b.LUT3D != nil && b.LUT3D.Samples != nil {
			return b.LUT3D.Apply(rgb)
		}
	}
	return rgb
}

// Apply maps a colour through all blocks of the topology, in order.
func (t *Topology) Apply(rgb f64.Vec3) f64.Vec3 {
	for _, b := range t.Blocks {
		rgb = b.Apply(rgb)
	}
	return rgb
}

// Apply maps each channel through its curve, using linear interpolation
// between the uniformly spaced samples.  A single-channel LUT is applied
// to all three channels.
func (l *LUT1D) Apply(rgb f64.Vec3) f64.Vec3 {
	var out f64.Vec3
	for i, x := range rgb {
		ch := 0
		if l.NumChannels == 3 {
			ch = i
		}
		out[i] = interp1D(l.Channel(ch), x)
	}
	return out
}

func interp1D(table []float64, x float64) float64 {
	n := len(table)
	x = clamp(x, 0, 1)

	pos := x * float64(n-1)
	idx := int(pos)
	if idx >= n-1 {
		return table[n-1]
	}

	frac := pos - float64(idx)
	return table[idx] + frac*(table[idx+1]-table[idx])
}

// Apply performs tetrahedral interpolation in the 3D LUT.
// The input values are clamped to [0, 1].
func (l *LUT3D) Apply(rgb f64.Vec3) f64.Vec3 {
	gridSize := l.Depth

	// scale to grid coordinates
	scale := float64(gridSize - 1)
	rPos := clamp(rgb[0], 0, 1) * scale
	gPos := clamp(rgb[1], 0, 1) * scale
	bPos := clamp(rgb[2], 0, 1) * scale

	ri := min(int(rPos), gridSize-2)
	gi := min(int(gPos), gridSize-2)
	bi := min(int(bPos), gridSize-2)

	fr := rPos - float64(ri)
	fg := gPos - float64(gi)
	fb := bPos - float64(bi)

	gStride := gridSize
	rStride := gridSize * gStride
	base := l.Index(ri, gi, bi)

	c000 := l.Samples[base]
	c001 := l.Samples[base+1]
	c010 := l.Samples[base+gStride]
	c011 := l.Samples[base+gStride+1]
	c100 := l.Samples[base+rStride]
	c101 := l.Samples[base+rStride+1]
	c110 := l.Samples[base+rStride+gStride]
	c111 := l.Samples[base+rStride+gStride+1]

	// Select the tetrahedron based on the ordering of the fractional
	// parts.  Each case is a weighted sum of four cube corners.
	var out f64.Vec3
	for i := range out {
		switch {
		case fr > fg && fg > fb:
			out[i] = (1-fr)*c000[i] + (fr-fg)*c100[i] + (fg-fb)*c110[i] + fb*c111[i]
		case fr > fg && fr > fb:
			out[i] = (1-fr)*c000[i] + (fr-fb)*c100[i] + (fb-fg)*c101[i] + fg*c111[i]
		case fr > fg:
			out[i] = (1-fb)*c000[i] + (fb-fr)*c001[i] + (fr-fg)*c101[i] + fg*c111[i]
		case fr > fb:
			out[i] = (1-fg)*c000[i] + (fg-fr)*c010[i] + (fr-fb)*c110[i] + fb*c111[i]
		case fg > fb:
			out[i] = (1-fg)*c000[i] + (fg-fb)*c010[i] + (fb-fr)*c011[i] + fr*c111[i]
		default:
			out[i] = (1-fb)*c000[i] + (fb-fg)*c001[i] + (fg-fr)*c011[i] + fr*c111[i]
		}
	}
	return out
}
