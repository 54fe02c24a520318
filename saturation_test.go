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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f64"
)

func TestLimitSaturation(t *testing.T) {
	tests := []struct {
		factor, uvMax float64
		want          float64
	}{
		{0.5, 0.2, 0.5},
		{1, 0.2, 1},
		{1.3, 0.5, 1},
		{1.3, 0.4375, 1},
		{1.5, 0.002, 1},
		{2, 0.2, 1 + 0.2375/0.4375},
		{1.5, 0.005, 1 + 0.5*(0.4325/0.4375)*(0.005-0.0029297)},
	}
	for _, tt := range tests {
		got := limitSaturation(tt.factor, tt.uvMax)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("limitSaturation(%g, %g) = %g, want %g",
				tt.factor, tt.uvMax, got, tt.want)
		}
	}
}

func TestInterpolateAnchors(t *testing.T) {
	w := SaturationWeights{0.5, 0.7, 1.1, 1.3, 1.7, 2.3}
	for i, h := range HueAnchors {
		if got := interpolateSaturation(h, &w); got != w[i] {
			t.Errorf("weight at anchor %d = %g, want %g", i, got, w[i])
		}
	}

	mid := (HueAnchors[Green] + HueAnchors[Cyan]) / 2
	if got := interpolateSaturation(mid, &w); math.Abs(got-1.2) > 1e-12 {
		t.Errorf("weight between green and cyan = %g, want 1.2", got)
	}
}

func TestInterpolateWrap(t *testing.T) {
	w := SaturationWeights{Red: 1, Magenta: 0}
	span := HueAnchors[Red] + 1 - HueAnchors[Magenta]

	tests := []struct {
		h, want float64
	}{
		{0, (1 - HueAnchors[Magenta]) / span},
		{0.05, (1.05 - HueAnchors[Magenta]) / span},
		{0.95, (0.95 - HueAnchors[Magenta]) / span},
	}
	for _, tt := range tests {
		got := interpolateSaturation(tt.h, &w)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("interpolateSaturation(%g) = %g, want %g", tt.h, got, tt.want)
		}
	}
}

func TestChangePixelGray(t *testing.T) {
	w := SaturationWeights{2.5, 0, 2.5, 0, 2.5, 0}
	for _, v := range []float64{0, 0.1, 0.5, 1} {
		rgb := f64.Vec3{v, v, v}
		if got := ChangePixelSaturation(rgb, &w); got != rgb {
			t.Errorf("gray %v -> %v", rgb, got)
		}
	}
}

func TestChangePixelDesaturate(t *testing.T) {
	w := SaturationWeights{}
	got := ChangePixelSaturation(f64.Vec3{1, 0, 0}, &w)
	for i := range got {
		if math.Abs(got[i]-kr) > 1e-9 {
			t.Fatalf("red with zero weights -> %v, want gray %g", got, kr)
		}
	}
}

func TestChangePixelBoost(t *testing.T) {
	w := SaturationWeights{2, 2, 2, 2, 2, 2}
	rgb := f64.Vec3{0.6, 0.4, 0.4}
	out := ChangePixelSaturation(rgb, &w)

	in := rgbToYCbCr(rgb)
	res := rgbToYCbCr(out)
	if math.Abs(res[0]-in[0]) > 1e-9 {
		t.Errorf("luma changed from %g to %g", in[0], res[0])
	}
	if math.Abs(res[2]) <= math.Abs(in[2]) {
		t.Errorf("Cr not increased: %g -> %g", in[2], res[2])
	}

	// the boost is limited by the distance to the edge of the gamut
	factor := res[2] / in[2]
	want := limitSaturation(2, 2*math.Max(math.Abs(in[1]), math.Abs(in[2])))
	if math.Abs(factor-want) > 1e-9 {
		t.Errorf("saturation factor = %g, want %g", factor, want)
	}
}

func TestSaturationLUTIdentity(t *testing.T) {
	const depth = 9
	lut, err := PartialSaturationLUT(depth, &DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}

	// the general code path must agree with the identity exactly
	want := &LUT3D{Depth: depth}
	for r := range depth {
		for g := range depth {
			for b := range depth {
				rgb := f64.Vec3{float64(r) / (depth - 1), float64(g) / (depth - 1), float64(b) / (depth - 1)}
				want.Samples = append(want.Samples, ChangePixelSaturation(rgb, &DefaultWeights))
				if want.Samples[len(want.Samples)-1] != rgb {
					t.Fatalf("unit weights change %v", rgb)
				}
			}
		}
	}
	if d := cmp.Diff(want, lut); d != "" {
		t.Errorf("identity LUT mismatch (-want +got):\n%s", d)
	}
}

func TestSaturationLUTGrayAxis(t *testing.T) {
	const depth = 5
	w := SaturationWeights{0.2, 2, 0.4, 1.8, 0.6, 1.6}
	lut, err := PartialSaturationLUT(depth, &w)
	if err != nil {
		t.Fatal(err)
	}
	for i := range depth {
		v := float64(i) / (depth - 1)
		if got := lut.At(i, i, i); got != (f64.Vec3{v, v, v}) {
			t.Errorf("gray sample %d = %v", i, got)
		}
	}
}

func TestSaturationLUTDepth(t *testing.T) {
	for _, depth := range []int{-1, 0, 1, 1000} {
		_, err := PartialSaturationLUT(depth, &DefaultWeights)
		if !errors.Is(err, ErrAllocationFailed) {
			t.Errorf("depth %d: got error %v", depth, err)
		}
	}
}
