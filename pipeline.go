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
	"fmt"
	"log/slog"
)

// Pipeline synthesises colour pipeline payloads and submits them to a
// display through a [Driver].
//
// Every operation fetches the topology afresh and submits at most once.
// If an operation fails, nothing is submitted and the Pipeline remains
// usable.  A Pipeline is not safe for concurrent use on the same display.
type Pipeline struct {
	drv Driver
	log *slog.Logger

	// free releases the sample buffers of blocks built by an operation.
	free func(blocks ...*Block)
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithLogger sets the logger used to report the parameters and outcome of
// every operation.  By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a Pipeline which uses drv to access the displays.
func New(drv Driver, opts ...Option) *Pipeline {
	p := &Pipeline{
		drv:  drv,
		log:  slog.New(slog.DiscardHandler),
		free: releaseAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ApplyHueSaturation programs the first 3×3 matrix of the pipe with a hue
// rotation and saturation change.  The slider positions are converted
// using [MapHue] and [MapSaturation].
func (p *Pipeline) ApplyHueSaturation(d Display, hueSlider, satSlider int) error {
	hue := MapHue(hueSlider)
	sat := MapSaturation(satSlider)
	log := p.log.With("op", "hue-saturation", "display", d)
	log.Info("parameters", "hue", hue, "saturation", sat)

	t, err := p.capability(d)
	if err != nil {
		return p.failed(log, err)
	}
	idx, err := ResolveHueSaturation(t)
	if err != nil {
		return p.failed(log, err)
	}

	b := t.Blocks[idx].template()
	err = setMatrix(b, HueSaturationCSC(float64(hue), sat))
	if err != nil {
		return p.failed(log, err)
	}
	return p.submit(log, d, b)
}

// ApplyContrast programs the CSC which follows the degamma LUT with
// [ContrastCSC].
func (p *Pipeline) ApplyContrast(d Display) error {
	log := p.log.With("op", "contrast", "display", d)

	t, err := p.capability(d)
	if err != nil {
		return p.failed(log, err)
	}
	chain, err := ResolveChain(t, false)
	if err != nil {
		return p.failed(log, err)
	}
	log.Info("resolved", "csc", chain.CSC)

	b := t.Blocks[chain.CSC].template()
	err = setMatrix(b, ContrastCSC())
	if err != nil {
		return p.failed(log, err)
	}
	return p.submit(log, d, b)
}

// ApplyLinearColorCorrection programs the degamma LUT, CSC and gamma LUT
// chain so that the CSC operates on linear light: the degamma LUT decodes
// sRGB, the CSC is the identity and the gamma LUT re-encodes sRGB.  All
// three blocks are submitted together.
func (p *Pipeline) ApplyLinearColorCorrection(d Display) error {
	log := p.log.With("op", "linear-csc", "display", d)

	t, err := p.capability(d)
	if err != nil {
		return p.failed(log, err)
	}
	chain, err := ResolveChain(t, true)
	if err != nil {
		return p.failed(log, err)
	}
	log.Info("resolved",
		"degamma", chain.DegammaLUT, "csc", chain.CSC, "gamma", chain.GammaLUT)

	degamma := t.Blocks[chain.DegammaLUT].template()
	csc := t.Blocks[chain.CSC].template()
	gamma := t.Blocks[chain.GammaLUT].template()
	blocks := []*Block{degamma, csc, gamma}
	defer p.free(blocks...)

	err = DegammaLUT(degamma)
	if err != nil {
		return p.failed(log, err)
	}
	err = setMatrix(csc, IdentityCSC())
	if err != nil {
		return p.failed(log, err)
	}
	err = EncodeLUT(gamma)
	if err != nil {
		return p.failed(log, err)
	}
	return p.submit(log, d, blocks...)
}

// GetSetGamma programs the last 1D LUT of the pipe with [GammaLUT] and
// returns the values read back from the driver.
func (p *Pipeline) GetSetGamma(d Display) (*Block, error) {
	log := p.log.With("op", "gamma", "display", d)

	t, err := p.capability(d)
	if err != nil {
		return nil, p.failed(log, err)
	}
	idx, err := ResolveTrailingGamma(t)
	if err != nil {
		return nil, p.failed(log, err)
	}
	log.Info("resolved", "gamma", idx, "encoding", t.OutputEncoding)

	b := t.Blocks[idx].template()
	defer p.free(b)
	err = GammaLUT(b, t.OutputEncoding)
	if err != nil {
		return nil, p.failed(log, err)
	}
	return p.submitAndRead(log, d, b)
}

// GetSetDeGamma programs the degamma LUT in front of the CSC with
// [DegammaLUT] and returns the values read back from the driver.
func (p *Pipeline) GetSetDeGamma(d Display) (*Block, error) {
	log := p.log.With("op", "degamma", "display", d)

	t, err := p.capability(d)
	if err != nil {
		return nil, p.failed(log, err)
	}
	chain, err := ResolveChain(t, false)
	if err != nil {
		return nil, p.failed(log, err)
	}
	log.Info("resolved", "degamma", chain.DegammaLUT)

	b := t.Blocks[chain.DegammaLUT].template()
	defer p.free(b)
	err = DegammaLUT(b)
	if err != nil {
		return nil, p.failed(log, err)
	}
	return p.submitAndRead(log, d, b)
}

// Generate3DLutFromWeights programs the first 3D LUT of the pipe with
// [PartialSaturationLUT].  Weights are clamped to [0, 2.5].
func (p *Pipeline) Generate3DLutFromWeights(d Display, w SaturationWeights) error {
	for i := range w {
		w[i] = clamp(w[i], 0, MaxSaturation)
	}
	log := p.log.With("op", "3d-lut", "display", d)
	log.Info("parameters", "weights", w[:], "default", w.IsDefault())

	t, err := p.capability(d)
	if err != nil {
		return p.failed(log, err)
	}
	idx, err := Resolve3DLut(t)
	if err != nil {
		return p.failed(log, err)
	}

	b := t.Blocks[idx].template()
	if b.LUT3D == nil {
		return p.failed(log, fmt.Errorf("%w: %s has no size", ErrAllocationFailed, b))
	}
	defer p.free(b)
	err = fillSaturationLUT(b.LUT3D, &w)
	if err != nil {
		return p.failed(log, err)
	}
	log.Info("resolved", "lut", idx, "depth", b.LUT3D.Depth)
	return p.submit(log, d, b)
}

func (p *Pipeline) capability(d Display) (*Topology, error) {
	t, err := p.drv.PipelineCapability(d)
	if errors.Is(err, ErrUnsupportedFeature) {
		return nil, fmt.Errorf("colorpipe: display %d: %w", d, err)
	} else if err != nil {
		return nil, &DriverError{Op: "PipelineCapability", Err: err}
	}
	if t == nil || len(t.Blocks) == 0 {
		return nil, fmt.Errorf("colorpipe: display %d: %w: no colour pipeline", d, ErrUnsupportedFeature)
	}
	for i, b := range t.Blocks {
		if b == nil {
			return nil, &DriverError{
				Op:  "PipelineCapability",
				Err: fmt.Errorf("missing block at position %d", i),
			}
		}
	}
	return t, nil
}

func (p *Pipeline) submit(log *slog.Logger, d Display, blocks ...*Block) error {
	err := p.drv.SubmitPipeline(d, blocks)
	if err != nil {
		return p.failed(log, &DriverError{Op: "SubmitPipeline", Err: err})
	}
	log.Info("submitted", "blocks", len(blocks))
	return nil
}

func (p *Pipeline) submitAndRead(log *slog.Logger, d Display, b *Block) (*Block, error) {
	err := p.submit(log, d, b)
	if err != nil {
		return nil, err
	}
	cur, err := p.drv.PipelineCurrent(d, b.ID)
	if err != nil {
		return nil, p.failed(log, &DriverError{Op: "PipelineCurrent", Err: err})
	}
	return cur, nil
}

func (p *Pipeline) failed(log *slog.Logger, err error) error {
	log.Error("failed", "error", err)
	return err
}
