// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/util"
)

// Header - the canonical block header as stored
//
// TransactionCount was added by the version 1 layout; version 0 rows
// migrate with a zero count
type Header struct {
	Number           uint64             `json:"number"`
	Digest           blockdigest.Digest `json:"digest"`
	ParentDigest     blockdigest.Digest `json:"parentDigest"`
	StateRoot        blockdigest.Digest `json:"stateRoot"`
	Timestamp        uint64             `json:"timestamp"`
	TransactionCount uint64             `json:"transactionCount"`
}

// Pack - convert the header to its binary form
func (header *Header) Pack() []byte {
	buffer := make([]byte, 0, 3*blockdigest.Length+3*util.Varint64MaximumBytes)
	buffer = append(buffer, util.ToVarint64(header.Number)...)
	buffer = append(buffer, header.Digest[:]...)
	buffer = append(buffer, header.ParentDigest[:]...)
	buffer = append(buffer, header.StateRoot[:]...)
	buffer = append(buffer, util.ToVarint64(header.Timestamp)...)
	buffer = append(buffer, util.ToVarint64(header.TransactionCount)...)
	return buffer
}

// UnpackHeader - rebuild a header from its binary form
//
// the second return is false if the buffer is truncated or has
// trailing bytes
func UnpackHeader(buffer []byte) (*Header, bool) {
	header := &Header{}

	number, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	header.Number = number
	buffer = buffer[n:]

	for _, d := range []*blockdigest.Digest{&header.Digest, &header.ParentDigest, &header.StateRoot} {
		if len(buffer) < blockdigest.Length {
			return nil, false
		}
		copy(d[:], buffer[:blockdigest.Length])
		buffer = buffer[blockdigest.Length:]
	}

	timestamp, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	header.Timestamp = timestamp
	buffer = buffer[n:]

	count, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	header.TransactionCount = count
	buffer = buffer[n:]

	if len(buffer) != 0 {
		return nil, false
	}
	return header, true
}

// UnpackHeaderV0 - rebuild a header from the version 0 layout
//
// version 0 predates the transaction count; migrated rows carry zero
func UnpackHeaderV0(buffer []byte) (*Header, bool) {
	header := &Header{}

	number, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	header.Number = number
	buffer = buffer[n:]

	for _, d := range []*blockdigest.Digest{&header.Digest, &header.ParentDigest, &header.StateRoot} {
		if len(buffer) < blockdigest.Length {
			return nil, false
		}
		copy(d[:], buffer[:blockdigest.Length])
		buffer = buffer[blockdigest.Length:]
	}

	timestamp, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	header.Timestamp = timestamp
	buffer = buffer[n:]

	if len(buffer) != 0 {
		return nil, false
	}
	return header, true
}
