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
)

var (
	// ErrDriverCallFailed is returned (wrapped in a [DriverError]) when a
	// call into the driver does not succeed.
	ErrDriverCallFailed = errors.New("driver call failed")

	// ErrAllocationFailed indicates that a payload buffer could not be
	// allocated for the sizes reported by the driver.
	ErrAllocationFailed = errors.New("payload allocation failed")

	// ErrUnresolvedTopology indicates that the blocks required for an
	// operation were not found in the pipeline.
	ErrUnresolvedTopology = errors.New("unresolved pipeline topology")

	// ErrUnsupportedFeature indicates that the display does not offer the
	// requested capability.
	ErrUnsupportedFeature = errors.New("unsupported feature")
)

// DriverError records a failed driver call.
type DriverError struct {
	Op  string // name of the driver operation
	Err error  // error returned by the driver
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("colorpipe: %s: %v", e.Op, e.Err)
}

// Unwrap allows [errors.Is] to match both [ErrDriverCallFailed] and the
// underlying driver error.
func (e *DriverError) Unwrap() []error {
	return []error{ErrDriverCallFailed, e.Err}
}

// TopologyError reports a structural pattern which was not found in a
// pipeline topology.
type TopologyError struct {
	Pattern string
	Types   []BlockType
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("colorpipe: no %s in pipeline %v", e.Pattern, e.Types)
}

func (e *TopologyError) Unwrap() error {
	return ErrUnresolvedTopology
}

func unresolved(t *Topology, pattern string) error {
	return &TopologyError{Pattern: pattern, Types: t.Types()}
}
