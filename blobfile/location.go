// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blobfile

import (
	"encoding/binary"
	"fmt"
)

// LocationLength - bytes in a packed LocationInFile
const LocationLength = 12

// LocationInFile - handle to a byte range inside the blob file
//
// once returned by an insert the range [Offset, Offset+Length) is
// immutable
type LocationInFile struct {
	Offset uint64 `json:"offset"`
	Length uint32 `json:"length"`
}

// NextOffset - the first free offset after this location
func (location LocationInFile) NextOffset() uint64 {
	return location.Offset + uint64(location.Length)
}

// Pack - fixed size binary form: big endian offset ++ big endian length
func (location LocationInFile) Pack() []byte {
	buffer := make([]byte, LocationLength)
	binary.BigEndian.PutUint64(buffer[:8], location.Offset)
	binary.BigEndian.PutUint32(buffer[8:], location.Length)
	return buffer
}

// UnpackLocation - rebuild a location from its binary form
func UnpackLocation(buffer []byte) (LocationInFile, bool) {
	if len(buffer) != LocationLength {
		return LocationInFile{}, false
	}
	return LocationInFile{
		Offset: binary.BigEndian.Uint64(buffer[:8]),
		Length: binary.BigEndian.Uint32(buffer[8:]),
	}, true
}

// String - printable form for diagnostics
func (location LocationInFile) String() string {
	return fmt.Sprintf("%d+%d", location.Offset, location.Length)
}
