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
	"crypto/md5"
	"errors"
	"time"
	"unicode/utf16"
)

// DeviceLink describes an ICC DeviceLink profile which reproduces a
// synthesised RGB to RGB transformation.  This allows colour-managed
// applications to preview the effect of a pipeline configuration.
//
// The transformation is Input → LUT → Output.  Input and Output are
// optional; if present they are applied to every channel.
type DeviceLink struct {
	Description string
	Created     time.Time

	Input  *LUT1D
	LUT    *LUT3D
	Output *LUT1D
}

// ICC signatures used by DeviceLink profiles.
const (
	sigDeviceLink  = 0x6C696E6B // "link"
	sigRGB         = 0x52474220 // "RGB "
	sigAcsp        = 0x61637370 // "acsp"
	sigDescription = 0x64657363 // "desc"
	sigAToB0       = 0x41324230 // "A2B0"
	sigProfileSeq  = 0x70736571 // "pseq"

	iccVersion = 0x0440_0000 // 4.4.0
)

var errInvalidLink = errors.New("colorpipe: invalid DeviceLink parameters")

// Encode returns the binary ICC profile.
// The A2B0 tag is stored as lut16Type ("mft2").
func (l *DeviceLink) Encode() ([]byte, error) {
	a2b0, err := l.encodeLut16()
	if err != nil {
		return nil, err
	}

	tags := []struct {
		sig  uint32
		data []byte
	}{
		{sigDescription, encodeMLUC(l.Description)},
		{sigAToB0, a2b0},
		{sigProfileSeq, make([]byte, 12)},
	}
	copy(tags[2].data, "pseq")

	pos := 128 + 4 + len(tags)*12
	starts := make([]int, len(tags))
	for i, tag := range tags {
		starts[i] = pos
		pos += (len(tag.data) + 3) &^ 3
	}

	buf := make([]byte, pos)
	putUint32(buf, 0, uint32(pos))
	putUint32(buf, 8, iccVersion)
	putUint32(buf, 12, sigDeviceLink)
	putUint32(buf, 16, sigRGB)
	putUint32(buf, 20, sigRGB)
	putDateTime(buf, 24, l.Created)
	putUint32(buf, 36, sigAcsp)
	copy(buf[68:], d50)

	putUint32(buf, 128, uint32(len(tags)))
	for i, tag := range tags {
		entry := 128 + 4 + i*12
		putUint32(buf, entry, tag.sig)
		putUint32(buf, entry+4, uint32(starts[i]))
		putUint32(buf, entry+8, uint32(len(tag.data)))
		copy(buf[starts[i]:], tag.data)
	}

	// Flags, rendering intent and profile ID are zero at this point,
	// as required for computing the profile ID.
	h := md5.Sum(buf)
	copy(buf[84:], h[:])

	return buf, nil
}

func (l *DeviceLink) encodeLut16() ([]byte, error) {
	lut := l.LUT
	if lut == nil || !validDepth(lut.Depth) ||
		len(lut.Samples) != lut.Depth*lut.Depth*lut.Depth {
		return nil, errInvalidLink
	}
	in, err := curveTable(l.Input)
	if err != nil {
		return nil, err
	}
	out, err := curveTable(l.Output)
	if err != nil {
		return nil, err
	}

	const channels = 3
	clutSize := len(lut.Samples) * channels
	size := 52 + 2*(len(in)*channels+clutSize+len(out)*channels)

	buf := make([]byte, size)
	copy(buf[0:4], "mft2")
	buf[8] = channels
	buf[9] = channels
	buf[10] = byte(lut.Depth)
	for i, v := range identity3 {
		putS15Fixed16(buf, 12+i*4, v)
	}
	putUint16(buf, 48, uint16(len(in)))
	putUint16(buf, 50, uint16(len(out)))

	offset := 52
	for range channels {
		for _, v := range in {
			putUint16(buf, offset, v)
			offset += 2
		}
	}
	// the CLUT order of lut16Type matches lut.Samples: first input
	// channel varies slowest
	for _, c := range lut.Samples {
		for _, v := range c {
			putUint16(buf, offset, toUint16(v))
			offset += 2
		}
	}
	for range channels {
		for _, v := range out {
			putUint16(buf, offset, v)
			offset += 2
		}
	}

	return buf, nil
}

// curveTable converts the first channel of a 1D LUT to a lut16Type table.
// A nil LUT gives the identity.
func curveTable(l *LUT1D) ([]uint16, error) {
	if l == nil {
		return []uint16{0, 0xFFFF}, nil
	}
	if l.NumSamples < 2 || l.NumSamples > 4096 || len(l.Samples) < l.NumSamples {
		return nil, errInvalidLink
	}
	res := make([]uint16, l.NumSamples)
	for i, v := range l.Channel(0) {
		res[i] = toUint16(v)
	}
	return res, nil
}

func encodeMLUC(s string) []byte {
	text := utf16.Encode([]rune(s))
	buf := make([]byte, 28+2*len(text))
	copy(buf[0:4], "mluc")
	putUint32(buf, 8, 1)   // number of records
	putUint32(buf, 12, 12) // record size
	copy(buf[16:20], "enUS")
	putUint32(buf, 20, uint32(2*len(text)))
	putUint32(buf, 24, 28)
	for i, c := range text {
		putUint16(buf, 28+2*i, c)
	}
	return buf
}

// d50 is the PCS illuminant in s15Fixed16Number encoding.
var d50 = []byte{
	0x00, 0x00, 0xf6, 0xd6, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0xd3, 0x2d,
}

func toUint16(v float64) uint16 {
	return uint16(clamp(v, 0, 1)*65535 + 0.5)
}

func putUint16(data []byte, offset int, value uint16) {
	data[offset] = byte(value >> 8)
	data[offset+1] = byte(value)
}

func putUint32(data []byte, offset int, value uint32) {
	data[offset] = byte(value >> 24)
	data[offset+1] = byte(value >> 16)
	data[offset+2] = byte(value >> 8)
	data[offset+3] = byte(value)
}

func putS15Fixed16(data []byte, offset int, value float64) {
	raw := int32(value * 65536.0)
	putUint32(data, offset, uint32(raw))
}

func putDateTime(data []byte, offset int, t time.Time) {
	if t.IsZero() {
		return
	}
	t = t.UTC()
	fields := []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	for i, v := range fields {
		putUint16(data, offset+2*i, uint16(v))
	}
}
