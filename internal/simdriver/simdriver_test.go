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

package simdriver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/colorpipe"
)

func newTestDriver() *Driver {
	d := New()
	d.AddDisplay(1, colorpipe.EncodingSRGB,
		LUT1D(10, 3, 4),
		MatrixWithOffsets(11),
		LUT3D(12, 2),
	)
	return d
}

func TestCapability(t *testing.T) {
	d := newTestDriver()

	caps, err := d.PipelineCapability(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []colorpipe.BlockType{colorpipe.OneDLut, colorpipe.Matrix3x3WithOffsets, colorpipe.ThreeDLut}
	if diff := cmp.Diff(want, caps.Types()); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}

	// the caller owns the result
	caps.Blocks[0].LUT1D.NumSamples = 99
	caps2, err := d.PipelineCapability(1)
	if err != nil {
		t.Fatal(err)
	}
	if caps2.Blocks[0].LUT1D.NumSamples != 4 {
		t.Error("capabilities were modified through a returned topology")
	}

	_, err = d.PipelineCapability(2)
	if !errors.Is(err, errNoDisplay) {
		t.Errorf("unknown display: got error %v", err)
	}
}

func TestSubmit(t *testing.T) {
	d := newTestDriver()

	lut := &colorpipe.Block{
		ID:    10,
		Type:  colorpipe.OneDLut,
		LUT1D: &colorpipe.LUT1D{NumChannels: 3, NumSamples: 4, Samples: make([]float64, 12)},
	}
	lut.LUT1D.Samples[5] = 0.5
	err := d.SubmitPipeline(1, []*colorpipe.Block{lut})
	if err != nil {
		t.Fatal(err)
	}

	// later changes by the caller do not affect the programmed values
	lut.LUT1D.Samples[5] = 0.75

	cur, err := d.PipelineCurrent(1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := cur.LUT1D.Samples[5]; got != 0.5 {
		t.Errorf("read back %g, want 0.5", got)
	}

	subs := d.Submissions(1)
	if len(subs) != 1 || subs[0].Handed[0] != lut || subs[0].Blocks[0] == lut {
		t.Errorf("unexpected submissions %v", subs)
	}

	prog := d.Programmed(1)
	if prog.Blocks[0].LUT1D.Samples == nil || prog.Blocks[1].Matrix != nil {
		t.Error("programmed topology does not match the submissions")
	}
}

func TestSubmitRejected(t *testing.T) {
	tests := []struct {
		name  string
		block *colorpipe.Block
	}{
		{"unknown block", &colorpipe.Block{ID: 99, Type: colorpipe.Matrix3x3, Matrix: &colorpipe.Matrix{}}},
		{"wrong type", &colorpipe.Block{ID: 11, Type: colorpipe.Matrix3x3, Matrix: &colorpipe.Matrix{}}},
		{"missing matrix", &colorpipe.Block{ID: 11, Type: colorpipe.Matrix3x3WithOffsets}},
		{"wrong size", &colorpipe.Block{
			ID:    10,
			Type:  colorpipe.OneDLut,
			LUT1D: &colorpipe.LUT1D{NumChannels: 3, NumSamples: 5, Samples: make([]float64, 15)},
		}},
		{"no samples", &colorpipe.Block{
			ID:    12,
			Type:  colorpipe.ThreeDLut,
			LUT3D: &colorpipe.LUT3D{Depth: 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDriver()
			good := &colorpipe.Block{ID: 11, Type: colorpipe.Matrix3x3WithOffsets, Matrix: &colorpipe.Matrix{}}
			err := d.SubmitPipeline(1, []*colorpipe.Block{good, tt.block})
			if err == nil {
				t.Fatal("no error")
			}
			if len(d.Submissions(1)) != 0 {
				t.Error("rejected submission was recorded")
			}
			cur, err := d.PipelineCurrent(1, 11)
			if err != nil {
				t.Fatal(err)
			}
			if cur.Matrix != nil {
				t.Error("part of a rejected submission was programmed")
			}
		})
	}
}

func TestFailOn(t *testing.T) {
	d := newTestDriver()
	errTest := errors.New("test")

	d.FailOn(OpCurrent, errTest)
	_, err := d.PipelineCurrent(1, 10)
	if err != errTest {
		t.Errorf("got error %v", err)
	}

	d.FailOn(OpCurrent, nil)
	_, err = d.PipelineCurrent(1, 10)
	if err != nil {
		t.Error(err)
	}
	_, err = d.PipelineCurrent(1, 42)
	if !errors.Is(err, errNoBlock) {
		t.Errorf("unknown block: got error %v", err)
	}
}
