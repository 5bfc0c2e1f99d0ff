// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/meridian-chain/meridiand/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a digest
// stored and compared as a big endian byte array
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
//
// the chain defines block and class identifiers as SHA3-256 of the
// canonical record bytes; consensus-level hashing stays outside this
// repository, this is only used for locally derived identifiers and
// test fixtures
func NewDigest(record []byte) Digest {
	return Digest(sha3.Sum256(record))
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != Length {
		return fault.InvalidKeyLength
	}
	buffer := make([]byte, Length)
	_, err := hex.Decode(buffer, s)
	if err != nil {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromBytes - convert a byte slice to a digest
//
// the slice must be exactly Length bytes
func DigestFromBytes(buffer []byte) (Digest, error) {
	var digest Digest
	if len(buffer) != Length {
		return digest, fault.InvalidKeyLength
	}
	copy(digest[:], buffer)
	return digest, nil
}
