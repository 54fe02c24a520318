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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WriteCube writes a 3D LUT in the ".cube" text format.
//
// The format lists the samples with red varying fastest, so the order of
// the samples differs from the order of lut.Samples.
func WriteCube(w io.Writer, title string, lut *LUT3D) error {
	if lut.Depth < 2 || len(lut.Samples) != lut.Depth*lut.Depth*lut.Depth {
		return fmt.Errorf("colorpipe: invalid 3D LUT (depth %d, %d samples)",
			lut.Depth, len(lut.Samples))
	}

	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", title)
	}
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", lut.Depth)
	fmt.Fprintln(bw, "DOMAIN_MIN 0.0 0.0 0.0")
	fmt.Fprintln(bw, "DOMAIN_MAX 1.0 1.0 1.0")

	for b := range lut.Depth {
		for g := range lut.Depth {
			for r := range lut.Depth {
				c := lut.At(r, g, b)
				fmt.Fprintf(bw, "%.6f %.6f %.6f\n", c[0], c[1], c[2])
			}
		}
	}
	return bw.Flush()
}

// WriteCubeFile writes a 3D LUT to the named file, using [WriteCube].
// If the file name ends in ".zst", the output is zstd compressed.
func WriteCubeFile(name, title string, lut *LUT3D) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(name, ".zst") {
		return WriteCube(f, title, lut)
	}

	enc, err := zstd.NewWriter(f,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	err = WriteCube(enc, title, lut)
	if err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
