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

// Package simdriver implements an in-memory colour pipeline driver.
//
// The driver keeps a fixed topology for every display and remembers the
// values submitted for each block, so that the effect of an operation can
// be inspected and evaluated in software.  It is used by the tests and the
// example programs.
package simdriver

import (
	"errors"
	"fmt"

	"seehuhn.de/go/colorpipe"
)

// Names of the driver operations, for use with [Driver.FailOn].
const (
	OpCapability = "PipelineCapability"
	OpCurrent    = "PipelineCurrent"
	OpSubmit     = "SubmitPipeline"
)

var (
	errNoDisplay = errors.New("simdriver: unknown display")
	errNoBlock   = errors.New("simdriver: unknown block")
)

// Driver is an in-memory implementation of [colorpipe.Driver].
type Driver struct {
	displays map[colorpipe.Display]*display
	fail     map[string]error
}

type display struct {
	caps        *colorpipe.Topology
	current     map[uint32]*colorpipe.Block
	submissions []Submission
}

// Submission records one call to SubmitPipeline.
type Submission struct {
	// Blocks holds copies of the submitted blocks.
	Blocks []*colorpipe.Block

	// Handed holds the blocks as passed in by the caller.  This allows
	// to check that the caller released the buffers after the call.
	Handed []*colorpipe.Block
}

// New returns a driver without displays.
func New() *Driver {
	return &Driver{
		displays: make(map[colorpipe.Display]*display),
		fail:     make(map[string]error),
	}
}

// AddDisplay adds a display with the given output encoding and pipeline
// blocks.  The blocks describe the capabilities; see [LUT1D], [Matrix],
// [MatrixWithOffsets] and [LUT3D].
func (d *Driver) AddDisplay(h colorpipe.Display, enc colorpipe.Encoding, blocks ...*colorpipe.Block) {
	caps := &colorpipe.Topology{OutputEncoding: enc}
	for _, b := range blocks {
		caps.Blocks = append(caps.Blocks, clone(b))
	}
	d.displays[h] = &display{
		caps:    caps,
		current: make(map[uint32]*colorpipe.Block),
	}
}

// FailOn makes all further calls of the named operation return err.
// A nil error removes the failure.
func (d *Driver) FailOn(op string, err error) {
	if err == nil {
		delete(d.fail, op)
		return
	}
	d.fail[op] = err
}

// PipelineCapability implements the [colorpipe.Driver] interface.
func (d *Driver) PipelineCapability(h colorpipe.Display) (*colorpipe.Topology, error) {
	if err := d.fail[OpCapability]; err != nil {
		return nil, err
	}
	disp, ok := d.displays[h]
	if !ok {
		return nil, errNoDisplay
	}

	res := &colorpipe.Topology{OutputEncoding: disp.caps.OutputEncoding}
	for _, b := range disp.caps.Blocks {
		res.Blocks = append(res.Blocks, clone(b))
	}
	return res, nil
}

// PipelineCurrent implements the [colorpipe.Driver] interface.
// Blocks which were never programmed are returned without payload values.
func (d *Driver) PipelineCurrent(h colorpipe.Display, id uint32) (*colorpipe.Block, error) {
	if err := d.fail[OpCurrent]; err != nil {
		return nil, err
	}
	disp, ok := d.displays[h]
	if !ok {
		return nil, errNoDisplay
	}
	if b, ok := disp.current[id]; ok {
		return clone(b), nil
	}
	if b := disp.capsBlock(id); b != nil {
		return clone(b), nil
	}
	return nil, errNoBlock
}

// SubmitPipeline implements the [colorpipe.Driver] interface.
// The submission is rejected as a whole if any block does not match the
// capabilities of the display.
func (d *Driver) SubmitPipeline(h colorpipe.Display, blocks []*colorpipe.Block) error {
	if err := d.fail[OpSubmit]; err != nil {
		return err
	}
	disp, ok := d.displays[h]
	if !ok {
		return errNoDisplay
	}
	if len(blocks) == 0 {
		return errors.New("simdriver: empty submission")
	}

	sub := Submission{Handed: blocks}
	for _, b := range blocks {
		err := disp.check(b)
		if err != nil {
			return err
		}
		sub.Blocks = append(sub.Blocks, clone(b))
	}

	for _, b := range sub.Blocks {
		disp.current[b.ID] = clone(b)
	}
	disp.submissions = append(disp.submissions, sub)
	return nil
}

// Submissions returns all successful submissions for a display.
func (d *Driver) Submissions(h colorpipe.Display) []Submission {
	disp, ok := d.displays[h]
	if !ok {
		return nil
	}
	return disp.submissions
}

// Programmed returns the topology of a display with all submitted
// payloads in place.  Use [colorpipe.Topology.Apply] to evaluate it.
func (d *Driver) Programmed(h colorpipe.Display) *colorpipe.Topology {
	disp, ok := d.displays[h]
	if !ok {
		return nil
	}
	res := &colorpipe.Topology{OutputEncoding: disp.caps.OutputEncoding}
	for _, b := range disp.caps.Blocks {
		if cur, ok := disp.current[b.ID]; ok {
			b = cur
		}
		res.Blocks = append(res.Blocks, clone(b))
	}
	return res
}

func (disp *display) capsBlock(id uint32) *colorpipe.Block {
	for _, b := range disp.caps.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (disp *display) check(b *colorpipe.Block) error {
	caps := disp.capsBlock(b.ID)
	if caps == nil {
		return fmt.Errorf("%w %d", errNoBlock, b.ID)
	}
	if caps.Type != b.Type {
		return fmt.Errorf("simdriver: block %d is a %s, not a %s", b.ID, caps.Type, b.Type)
	}

	switch b.Type {
	case colorpipe.OneDLut:
		l := b.LUT1D
		if l == nil || caps.LUT1D == nil || l.NumChannels != caps.LUT1D.NumChannels ||
			l.NumSamples != caps.LUT1D.NumSamples ||
			len(l.Samples) != l.NumChannels*l.NumSamples {
			return fmt.Errorf("simdriver: %s: malformed 1D LUT", b)
		}
	case colorpipe.Matrix3x3, colorpipe.Matrix3x3WithOffsets:
		if b.Matrix == nil {
			return fmt.Errorf("simdriver: %s: missing matrix", b)
		}
	case colorpipe.ThreeDLut:
		l := b.LUT3D
		if l == nil || caps.LUT3D == nil || l.Depth != caps.LUT3D.Depth ||
			len(l.Samples) != l.Depth*l.Depth*l.Depth {
			return fmt.Errorf("simdriver: %s: malformed 3D LUT", b)
		}
	}
	return nil
}

// LUT1D returns the capability description of a 1D LUT block.
func LUT1D(id uint32, channels, samples int) *colorpipe.Block {
	return &colorpipe.Block{
		ID:   id,
		Type: colorpipe.OneDLut,
		LUT1D: &colorpipe.LUT1D{
			NumChannels: channels,
			NumSamples:  samples,
		},
	}
}

// Matrix returns the capability description of a 3×3 matrix block.
func Matrix(id uint32) *colorpipe.Block {
	return &colorpipe.Block{ID: id, Type: colorpipe.Matrix3x3}
}

// MatrixWithOffsets returns the capability description of a 3×3 matrix
// block with pre- and post-offsets.
func MatrixWithOffsets(id uint32) *colorpipe.Block {
	return &colorpipe.Block{ID: id, Type: colorpipe.Matrix3x3WithOffsets}
}

// LUT3D returns the capability description of a 3D LUT block.
func LUT3D(id uint32, depth int) *colorpipe.Block {
	return &colorpipe.Block{
		ID:    id,
		Type:  colorpipe.ThreeDLut,
		LUT3D: &colorpipe.LUT3D{Depth: depth},
	}
}

func clone(b *colorpipe.Block) *colorpipe.Block {
	res := &colorpipe.Block{ID: b.ID, Type: b.Type}
	if b.LUT1D != nil {
		l := *b.LUT1D
		if l.Samples != nil {
			l.Samples = append([]float64(nil), l.Samples...)
		}
		res.LUT1D = &l
	}
	if b.Matrix != nil {
		m := *b.Matrix
		res.Matrix = &m
	}
	if b.LUT3D != nil {
		l := *b.LUT3D
		if l.Samples != nil {
			l.Samples = append(l.Samples[:0:0], l.Samples...)
		}
		res.LUT3D = &l
	}
	return res
}
