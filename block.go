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

// MaxLUTSamples is the largest number of values a single LUT payload may
// hold.  Capability reports asking for more are refused with
// [ErrAllocationFailed].
const MaxLUTSamples = 1 << 22

// Block is one hardware colour-transform stage of a display pipe.
//
// Exactly one of LUT1D, Matrix and LUT3D is used, selected by Type.
// In a capability report the payload describes the size of the stage and
// carries no samples; the builders in this package fill in the samples.
type Block struct {
	// ID identifies the block.  It is only stable within the topology it
	// was reported in.
	ID   uint32
	Type BlockType

	LUT1D  *LUT1D
	Matrix *Matrix
	LUT3D  *LUT3D
}

func (b *Block) String() string {
	return fmt.Sprintf("block %d (%s)", b.ID, b.Type)
}

// template derives a fresh submission block from a capability block.
// Only the block identity and the payload dimensions are carried over.
func (b *Block) template() *Block {
	res := &Block{ID: b.ID, Type: b.Type}
	switch b.Type {
	case OneDLut:
		if b.LUT1D != nil {
			res.LUT1D = &LUT1D{
				NumChannels: b.LUT1D.NumChannels,
				NumSamples:  b.LUT1D.NumSamples,
				Sampling:    b.LUT1D.Sampling,
			}
		}
	case ThreeDLut:
		if b.LUT3D != nil {
			res.LUT3D = &LUT3D{Depth: b.LUT3D.Depth}
		}
	}
	return res
}

// release drops the sample buffers of the block.
// It is safe to call release more than once.
func (b *Block) release() {
	if b == nil {
		return
	}
	if b.LUT1D != nil {
		b.LUT1D.Samples = nil
	}
	if b.LUT3D != nil {
		b.LUT3D.Samples = nil
	}
}

func releaseAll(blocks ...*Block) {
	for _, b := range blocks {
		b.release()
	}
}

// LUT1D is the payload of a 1D LUT block.
//
// The samples are stored channel-major: all samples of the first (red)
// channel, followed by the second and third channel.  Use [LUT1D.At] and
// [LUT1D.Set] to access individual samples.
type LUT1D struct {
	NumChannels int // 1 or 3
	NumSamples  int // samples per channel, at least 2
	Sampling    SamplingType
	Samples     []float64
}

// alloc allocates the sample buffer.
func (l *LUT1D) alloc() error {
	if l.NumChannels != 1 && l.NumChannels != 3 {
		return fmt.Errorf("%w: %d channels in 1D LUT", ErrAllocationFailed, l.NumChannels)
	}
	if l.NumSamples < 2 || l.NumSamples > MaxLUTSamples/l.NumChannels {
		return fmt.Errorf("%w: %d samples per channel in 1D LUT", ErrAllocationFailed, l.NumSamples)
	}
	l.Samples = make([]float64, l.NumChannels*l.NumSamples)
	return nil
}

// At returns sample i of channel ch.
func (l *LUT1D) At(ch, i int) float64 {
	return l.Samples[ch*l.NumSamples+i]
}

// Set changes sample i of channel ch.
func (l *LUT1D) Set(ch, i int, v float64) {
	l.Samples[ch*l.NumSamples+i] = v
}

// Channel returns the samples of channel ch.
// The returned slice shares storage with the LUT.
func (l *LUT1D) Channel(ch int) []float64 {
	start := ch * l.NumSamples
	return l.Samples[start : start+l.NumSamples : start+l.NumSamples]
}

// Matrix is the payload of a matrix block.
// The output is computed as M·(in + Pre) + Post.
// For [Matrix3x3] blocks the offsets are zero.
type Matrix struct {
	M    f64.Mat3
	Pre  f64.Vec3
	Post f64.Vec3
}

// Apply maps a colour through the matrix.
func (m *Matrix) Apply(in f64.Vec3) f64.Vec3 {
	v := f64.Vec3{in[0] + m.Pre[0], in[1] + m.Pre[1], in[2] + m.Pre[2]}
	out := mulMatVec(&m.M, v)
	for i := range out {
		out[i] += m.Post[i]
	}
	return out
}

// LUT3D is the payload of a 3D LUT block.
//
// The table holds Depth³ RGB triples.  The sample for grid position
// (r, g, b) is stored at index (r·Depth + g)·Depth + b, so that blue
// varies fastest.
type LUT3D struct {
	Depth   int
	Samples []f64.Vec3
}

func (l *LUT3D) alloc() error {
	if !validDepth(l.Depth) {
		return fmt.Errorf("%w: 3D LUT depth %d", ErrAllocationFailed, l.Depth)
	}
	l.Samples = make([]f64.Vec3, l.Depth*l.Depth*l.Depth)
	return nil
}

// validDepth reports whether a 3D LUT of the given depth can be
// allocated.  The largest valid depth is 111.
func validDepth(depth int) bool {
	return depth >= 2 && depth*depth*depth <= MaxLUTSamples/3
}

// Index returns the position of grid point (r, g, b) in l.Samples.
func (l *LUT3D) Index(r, g, b int) int {
	return (r*l.Depth+g)*l.Depth + b
}

// At returns the sample at grid point (r, g, b).
func (l *LUT3D) At(r, g, b int) f64.Vec3 {
	return l.Samples[l.Index(r, g, b)]
}

// Set changes the sample at grid point (r, g, b).
func (l *LUT3D) Set(r, g, b int, c f64.Vec3) {
	l.Samples[l.Index(r, g, b)] = c
}

// Topology is the ordered list of blocks of one display pipe, as reported
// by the driver.  The order of the blocks encodes their role and is never
// changed by this package.
type Topology struct {
	Blocks []*Block

	// OutputEncoding is the pixel encoding the pipe produces.
	OutputEncoding Encoding
}

// Types returns the block types in pipeline order.
func (t *Topology) Types() []BlockType {
	res := make([]BlockType, len(t.Blocks))
	for i, b := range t.Blocks {
		res[i] = b.Type
	}
	return res
}
