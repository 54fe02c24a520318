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
	"crypto/md5"
	"fmt"
	"time"
	"unicode/utf16"
)

// InvalidProfileError indicates that an ICC DeviceLink profile contains
// invalid or unsupported binary data.
type InvalidProfileError struct {
	Offset int
	Reason string
}

func invalidProfile(offset int, reason string) error {
	return &InvalidProfileError{Offset: offset, Reason: reason}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("colorpipe: invalid DeviceLink profile (byte %d): %s", e.Offset, e.Reason)
}

// DecodeDeviceLink decodes an RGB to RGB DeviceLink profile whose A2B0 tag
// is stored as lut16Type, such as the profiles written by
// [DeviceLink.Encode].  Only the first channel of the input and output
// tables is used.  Tables with two entries, 0 and 65535, are the identity
// and decode as nil.
//
// If the profile ID is set, it must match the profile contents.
func DecodeDeviceLink(data []byte) (*DeviceLink, error) {
	if len(data) < 128+4 {
		return nil, invalidProfile(0, "profile is too short")
	}
	if size := getUint32(data, 0); uint64(size) != uint64(len(data)) {
		return nil, invalidProfile(0, "wrong profile size")
	}
	if string(data[36:40]) != "acsp" {
		return nil, invalidProfile(36, "missing 'acsp' signature")
	}
	if getUint32(data, 12) != sigDeviceLink {
		return nil, invalidProfile(12, "not a DeviceLink profile")
	}
	if getUint32(data, 16) != sigRGB || getUint32(data, 20) != sigRGB {
		return nil, invalidProfile(16, "not an RGB to RGB link")
	}

	if !isZero(data[84:100]) {
		tmp := bytes.Clone(data)
		putUint32(tmp, 44, 0)
		putUint32(tmp, 64, 0)
		clear(tmp[84:100])
		sum := md5.Sum(tmp)
		if !bytes.Equal(sum[:], data[84:100]) {
			return nil, invalidProfile(84, "profile ID mismatch")
		}
	}

	numTags := getUint32(data, 128)
	if uint(numTags) > uint((len(data)-128-4)/12) {
		return nil, invalidProfile(128, "too many tags")
	}
	minTagOffset := 128 + 4 + int64(numTags)*12
	tags := make(map[uint32][]byte, numTags)
	for i := range int(numTags) {
		offset := 128 + 4 + i*12
		sig := getUint32(data, offset)
		start := int64(getUint32(data, offset+4))
		end := start + int64(getUint32(data, offset+8))
		if end-start < 8 {
			return nil, invalidProfile(offset+8, "tag is too small")
		}
		if start < minTagOffset || end > int64(len(data)) {
			return nil, invalidProfile(offset, "tag is out of bounds")
		}
		tags[sig] = data[start:end]
	}

	l := &DeviceLink{Created: getDateTime(data, 24)}
	if desc, ok := tags[sigDescription]; ok {
		text, err := decodeMLUC(desc)
		if err != nil {
			return nil, err
		}
		l.Description = text
	}

	a2b0, ok := tags[sigAToB0]
	if !ok {
		return nil, invalidProfile(128, "missing A2B0 tag")
	}
	err := l.decodeLut16(a2b0)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (l *DeviceLink) decodeLut16(data []byte) error {
	if len(data) < 52 || string(data[0:4]) != "mft2" {
		return invalidProfile(0, "A2B0 is not a lut16Type tag")
	}
	const channels = 3
	if data[8] != channels || data[9] != channels {
		return invalidProfile(0, "A2B0 is not an RGB to RGB table")
	}
	depth := int(data[10])
	if !validDepth(depth) {
		return invalidProfile(10, "unsupported number of grid points")
	}

	nIn := int(getUint16(data, 48))
	nOut := int(getUint16(data, 50))
	if nIn < 2 || nOut < 2 {
		return invalidProfile(0, "too few table entries")
	}
	clutStart := 52 + 2*channels*nIn
	outStart := clutStart + 2*channels*depth*depth*depth
	if len(data) < outStart+2*channels*nOut {
		return invalidProfile(0, "A2B0 tag is truncated")
	}

	l.Input = decodeCurveTable(data[52:], nIn)

	lut := &LUT3D{Depth: depth}
	err := lut.alloc()
	if err != nil {
		return invalidProfile(10, err.Error())
	}
	pos := clutStart
	for i := range lut.Samples {
		for j := range channels {
			lut.Samples[i][j] = float64(getUint16(data, pos)) / 65535
			pos += 2
		}
	}
	l.LUT = lut

	l.Output = decodeCurveTable(data[outStart:], nOut)
	return nil
}

// decodeCurveTable reads the first of a set of lut16Type tables.
func decodeCurveTable(data []byte, n int) *LUT1D {
	if n == 2 && getUint16(data, 0) == 0 && getUint16(data, 2) == 0xFFFF {
		return nil
	}
	res := &LUT1D{NumChannels: 1, NumSamples: n, Samples: make([]float64, n)}
	for i := range n {
		res.Samples[i] = float64(getUint16(data, 2*i)) / 65535
	}
	return res
}

// decodeMLUC returns the first record of a multiLocalizedUnicodeType tag.
func decodeMLUC(data []byte) (string, error) {
	if len(data) < 16 || string(data[0:4]) != "mluc" {
		return "", invalidProfile(0, "description is not a multiLocalizedUnicodeType tag")
	}
	n := getUint32(data, 8)
	if n == 0 || uint64(len(data)) < 16+12*uint64(n) {
		return "", invalidProfile(0, "malformed description")
	}
	length := uint64(getUint32(data, 20))
	start := uint64(getUint32(data, 24))
	if start+length > uint64(len(data)) || length&1 != 0 {
		return "", invalidProfile(0, "malformed description")
	}

	text := make([]uint16, length/2)
	for i := range text {
		text[i] = getUint16(data, int(start)+2*i)
	}
	return string(utf16.Decode(text)), nil
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

func getUint16(data []byte, offset int) uint16 {
	return uint16(data[offset])<<8 | uint16(data[offset+1])
}

func getUint32(data []byte, offset int) uint32 {
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
}

func getDateTime(data []byte, offset int) time.Time {
	var f [6]int
	for i := range f {
		f[i] = int(getUint16(data, offset+2*i))
	}
	year, month, day, hour, minute, second := f[0], f[1], f[2], f[3], f[4], f[5]
	if year < 1970 || year > 3000 ||
		month < 1 || month > 12 ||
		day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 61 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}
