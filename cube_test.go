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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/math/f64"
)

func TestWriteCube(t *testing.T) {
	lut, err := PartialSaturationLUT(2, &DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}
	// mark one sample, so that the order is visible
	lut.Samples[lut.Index(1, 0, 0)] = f64.Vec3{0.5, 0.25, 0.125}

	buf := &bytes.Buffer{}
	err = WriteCube(buf, "identity", lut)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		`TITLE "identity"`,
		"LUT_3D_SIZE 2",
		"DOMAIN_MIN 0.0 0.0 0.0",
		"DOMAIN_MAX 1.0 1.0 1.0",
		"0.000000 0.000000 0.000000",
		"0.500000 0.250000 0.125000",
		"0.000000 1.000000 0.000000",
		"1.000000 1.000000 0.000000",
		"0.000000 0.000000 1.000000",
		"1.000000 0.000000 1.000000",
		"0.000000 1.000000 1.000000",
		"1.000000 1.000000 1.000000",
		"",
	}, "\n")
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("cube file mismatch (-want +got):\n%s", d)
	}
}

func TestWriteCubeNoTitle(t *testing.T) {
	lut, err := PartialSaturationLUT(3, &DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	err = WriteCube(buf, "", lut)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "LUT_3D_SIZE 3" {
		t.Errorf("first line %q", lines[0])
	}
	if len(lines) != 3+27 {
		t.Errorf("%d lines, want %d", len(lines), 3+27)
	}
}

func TestWriteCubeInvalid(t *testing.T) {
	luts := []*LUT3D{
		{Depth: 1, Samples: make([]f64.Vec3, 1)},
		{Depth: 3},
		{Depth: 3, Samples: make([]f64.Vec3, 26)},
	}
	for _, lut := range luts {
		err := WriteCube(io.Discard, "", lut)
		if err == nil {
			t.Errorf("depth %d with %d samples: no error", lut.Depth, len(lut.Samples))
		}
	}
}

func TestWriteCubeFile(t *testing.T) {
	w := SaturationWeights{1.2, 1, 0.8, 1, 1.4, 1}
	lut, err := PartialSaturationLUT(9, &w)
	if err != nil {
		t.Fatal(err)
	}
	want := &bytes.Buffer{}
	err = WriteCube(want, "test", lut)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()

	plain := filepath.Join(dir, "test.cube")
	err = WriteCubeFile(plain, "test", lut)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(plain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Error("plain file differs from WriteCube output")
	}

	compressed := filepath.Join(dir, "test.cube.zst")
	err = WriteCubeFile(compressed, "test", lut)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(compressed)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	got, err = io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Error("decompressed file differs from WriteCube output")
	}

	info, err := os.Stat(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= int64(want.Len()) {
		t.Errorf("compressed size %d >= %d", info.Size(), want.Len())
	}
}
