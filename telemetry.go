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
	"slices"

	"golang.org/x/exp/maps"
)

// Counter identifies a monotonically increasing telemetry counter.
// Counters are reported as rates, computed from two successive samples.
type Counter int

// Counters reported by the power telemetry interface.
const (
	GPUEnergy             Counter = iota // J, rate in W
	GlobalActivity                       // s, rate in %
	RenderComputeActivity                // s, rate in %
	MediaActivity                        // s, rate in %
	VRAMEnergy                           // J, rate in W
	VRAMReadBandwidth                    // bytes, rate in bytes/s
	VRAMWriteBandwidth                   // bytes, rate in bytes/s
)

func (c Counter) String() string {
	switch c {
	case GPUEnergy:
		return "GPU energy"
	case GlobalActivity:
		return "GPU activity"
	case RenderComputeActivity:
		return "render/compute activity"
	case MediaActivity:
		return "media activity"
	case VRAMEnergy:
		return "VRAM energy"
	case VRAMReadBandwidth:
		return "VRAM read bandwidth"
	case VRAMWriteBandwidth:
		return "VRAM write bandwidth"
	default:
		return fmt.Sprintf("Counter(%d)", int(c))
	}
}

// isActivity reports whether the rate of c is a percentage.
func (c Counter) isActivity() bool {
	return c == GlobalActivity || c == RenderComputeActivity || c == MediaActivity
}

// Gauge identifies an instantaneous telemetry value.
type Gauge int

// Gauges reported by the power telemetry interface.
const (
	GPUVoltage Gauge = iota
	GPUFrequency
	GPUTemperature
	VRAMVoltage
	VRAMFrequency
	VRAMTemperature
	FanSpeed
)

func (g Gauge) String() string {
	switch g {
	case GPUVoltage:
		return "GPU voltage"
	case GPUFrequency:
		return "GPU frequency"
	case GPUTemperature:
		return "GPU temperature"
	case VRAMVoltage:
		return "VRAM voltage"
	case VRAMFrequency:
		return "VRAM frequency"
	case VRAMTemperature:
		return "VRAM temperature"
	case FanSpeed:
		return "fan speed"
	default:
		return fmt.Sprintf("Gauge(%d)", int(g))
	}
}

// TelemetrySample is one raw reading of the power telemetry of a device.
// Only supported counters and gauges are present in the maps.
type TelemetrySample struct {
	Timestamp float64 // seconds
	Counters  map[Counter]float64
	Gauges    map[Gauge]float64
}

// TelemetrySource reads raw telemetry samples for one device.
type TelemetrySource interface {
	PowerTelemetry() (*TelemetrySample, error)
}

// Telemetry holds the values derived from a telemetry sample.
type Telemetry struct {
	// Rates holds the rate of change of each supported counter since the
	// previous sample.  Rates is empty for the first sample of a session.
	Rates map[Counter]float64

	// Gauges holds the instantaneous values.
	Gauges map[Gauge]float64
}

// RateCounters returns the counters present in t.Rates, in increasing
// order.
func (t *Telemetry) RateCounters() []Counter {
	keys := maps.Keys(t.Rates)
	slices.Sort(keys)
	return keys
}

// GaugeNames returns the gauges present in t.Gauges, in increasing order.
func (t *Telemetry) GaugeNames() []Gauge {
	keys := maps.Keys(t.Gauges)
	slices.Sort(keys)
	return keys
}

// TelemetrySession turns successive telemetry samples of one device into
// rates.  Use a separate session for every device.
//
// A TelemetrySession is not safe for concurrent use.
type TelemetrySession struct {
	prev *TelemetrySample
}

// Update records a new sample and returns the values derived from it.
// Rates are only computed for counters present in both the previous and
// the new sample, and only if time has advanced.
func (s *TelemetrySession) Update(sample *TelemetrySample) Telemetry {
	res := Telemetry{
		Rates:  make(map[Counter]float64),
		Gauges: maps.Clone(sample.Gauges),
	}
	if res.Gauges == nil {
		res.Gauges = make(map[Gauge]float64)
	}

	prev := s.prev
	s.prev = &TelemetrySample{
		Timestamp: sample.Timestamp,
		Counters:  maps.Clone(sample.Counters),
	}
	if prev == nil {
		return res
	}

	dt := sample.Timestamp - prev.Timestamp
	if dt <= 0 {
		return res
	}
	for c, cur := range sample.Counters {
		old, ok := prev.Counters[c]
		if !ok {
			continue
		}
		rate := (cur - old) / dt
		if c.isActivity() {
			rate *= 100
		}
		res.Rates[c] = rate
	}
	return res
}

// Poll reads a sample from src and passes it to [TelemetrySession.Update].
func (s *TelemetrySession) Poll(src TelemetrySource) (Telemetry, error) {
	sample, err := src.PowerTelemetry()
	if err != nil {
		return Telemetry{}, &DriverError{Op: "PowerTelemetry", Err: err}
	}
	return s.Update(sample), nil
}

// Reset forgets the previous sample.
func (s *TelemetrySession) Reset() {
	s.prev = nil
}
