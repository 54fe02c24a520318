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

// Driver gives access to the colour pipeline of the display outputs.
//
// Implementations wrap the vendor driver.  Any multi-step query protocol
// of the vendor API is hidden inside the implementation.  Calls for the
// same display are issued sequentially; the driver is expected to
// serialise access to a display.
type Driver interface {
	// PipelineCapability returns the blocks of the display pipe, in
	// pipeline order.  The payloads describe the block sizes and carry no
	// samples.  The caller owns the returned topology.
	PipelineCapability(d Display) (*Topology, error)

	// PipelineCurrent reads back the values currently programmed into
	// one block.
	PipelineCurrent(d Display, blockID uint32) (*Block, error)

	// SubmitPipeline programs all given blocks in one atomic step.
	// The driver must not retain the blocks after returning.
	SubmitPipeline(d Display, blocks []*Block) error
}
