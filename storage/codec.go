// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/meridian-chain/meridiand/blobfile"
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// Codec - binary encoding of one stored type
//
// Pack followed by Unpack must return an equal value; Unpack rejects
// truncated or trailing bytes
type Codec[T any] interface {
	Pack(T) ([]byte, error)
	Unpack([]byte) (T, error)
}

// FixedCodec - a codec whose output is always EncodedSize bytes
//
// fixed size codecs may be concatenated inside a single key
type FixedCodec[T any] interface {
	Codec[T]
	EncodedSize() int
}

// big endian, so numeric order is key order
type uint64Codec struct{}

func (uint64Codec) EncodedSize() int { return 8 }

func (uint64Codec) Pack(value uint64) ([]byte, error) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer, nil
}

func (uint64Codec) Unpack(buffer []byte) (uint64, error) {
	if len(buffer) != 8 {
		return 0, fault.CannotDecodeRecord
	}
	return binary.BigEndian.Uint64(buffer), nil
}

type uint32Codec struct{}

func (uint32Codec) EncodedSize() int { return 4 }

func (uint32Codec) Pack(value uint32) ([]byte, error) {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, value)
	return buffer, nil
}

func (uint32Codec) Unpack(buffer []byte) (uint32, error) {
	if len(buffer) != 4 {
		return 0, fault.CannotDecodeRecord
	}
	return binary.BigEndian.Uint32(buffer), nil
}

type digestCodec struct{}

func (digestCodec) EncodedSize() int { return blockdigest.Length }

func (digestCodec) Pack(digest blockdigest.Digest) ([]byte, error) {
	buffer := make([]byte, blockdigest.Length)
	copy(buffer, digest[:])
	return buffer, nil
}

func (digestCodec) Unpack(buffer []byte) (blockdigest.Digest, error) {
	digest, err := blockdigest.DigestFromBytes(buffer)
	if err != nil {
		return blockdigest.Digest{}, fault.CannotDecodeRecord
	}
	return digest, nil
}

type wordCodec struct{}

func (wordCodec) EncodedSize() int { return 32 }

func (wordCodec) Pack(word blockrecord.Word) ([]byte, error) {
	buffer := make([]byte, 32)
	copy(buffer, word[:])
	return buffer, nil
}

func (wordCodec) Unpack(buffer []byte) (blockrecord.Word, error) {
	if len(buffer) != 32 {
		return blockrecord.Word{}, fault.CannotDecodeRecord
	}
	word := blockrecord.Word{}
	copy(word[:], buffer)
	return word, nil
}

type statusCodec struct{}

func (statusCodec) Pack(status blockrecord.BlockStatus) ([]byte, error) {
	if !blockrecord.ValidBlockStatus(byte(status)) {
		return nil, fault.CannotDecodeRecord
	}
	return []byte{byte(status)}, nil
}

func (statusCodec) Unpack(buffer []byte) (blockrecord.BlockStatus, error) {
	if len(buffer) != 1 || !blockrecord.ValidBlockStatus(buffer[0]) {
		return 0, fault.CannotDecodeRecord
	}
	return blockrecord.BlockStatus(buffer[0]), nil
}

type locationCodec struct{}

func (locationCodec) EncodedSize() int { return blobfile.LocationLength }

func (locationCodec) Pack(location blobfile.LocationInFile) ([]byte, error) {
	return location.Pack(), nil
}

func (locationCodec) Unpack(buffer []byte) (blobfile.LocationInFile, error) {
	location, ok := blobfile.UnpackLocation(buffer)
	if !ok {
		return blobfile.LocationInFile{}, fault.CannotDecodeRecord
	}
	return location, nil
}

// TxPosition - where a transaction sits inside the chain
type TxPosition struct {
	BlockNumber uint64 `json:"blockNumber"`
	Index       uint32 `json:"index"`
}

type txPositionCodec struct{}

func (txPositionCodec) EncodedSize() int { return 12 }

func (txPositionCodec) Pack(position TxPosition) ([]byte, error) {
	buffer := make([]byte, 12)
	binary.BigEndian.PutUint64(buffer[:8], position.BlockNumber)
	binary.BigEndian.PutUint32(buffer[8:], position.Index)
	return buffer, nil
}

func (txPositionCodec) Unpack(buffer []byte) (TxPosition, error) {
	if len(buffer) != 12 {
		return TxPosition{}, fault.CannotDecodeRecord
	}
	return TxPosition{
		BlockNumber: binary.BigEndian.Uint64(buffer[:8]),
		Index:       binary.BigEndian.Uint32(buffer[8:]),
	}, nil
}

// storageCell - one storage slot of one contract
//
// the packed form shares a 64 byte prefix for all writes of one
// contract, so a single range scan covers the contract
type storageCell struct {
	contract blockdigest.Digest
	key      blockdigest.Digest
}

type storageCellCodec struct{}

func (storageCellCodec) EncodedSize() int { return 2 * blockdigest.Length }

func (storageCellCodec) Pack(cell storageCell) ([]byte, error) {
	buffer := make([]byte, 0, 2*blockdigest.Length)
	buffer = append(buffer, cell.contract[:]...)
	buffer = append(buffer, cell.key[:]...)
	return buffer, nil
}

func (storageCellCodec) Unpack(buffer []byte) (storageCell, error) {
	if len(buffer) != 2*blockdigest.Length {
		return storageCell{}, fault.CannotDecodeRecord
	}
	cell := storageCell{}
	copy(cell.contract[:], buffer[:blockdigest.Length])
	copy(cell.key[:], buffer[blockdigest.Length:])
	return cell, nil
}

type transactionCodec struct{}

func (transactionCodec) Pack(tx *blockrecord.Transaction) ([]byte, error) {
	return tx.Pack(), nil
}

func (transactionCodec) Unpack(buffer []byte) (*blockrecord.Transaction, error) {
	tx, ok := blockrecord.UnpackTransaction(buffer)
	if !ok {
		return nil, fault.CannotDecodeRecord
	}
	return tx, nil
}

// current layout version of a stored header row
const headerVersion = 1

type headerCodec struct{}

func (headerCodec) Pack(header *blockrecord.Header) ([]byte, error) {
	return header.Pack(), nil
}

func (headerCodec) Unpack(buffer []byte) (*blockrecord.Header, error) {
	header, ok := blockrecord.UnpackHeader(buffer)
	if !ok {
		return nil, fault.CannotDecodeRecord
	}
	return header, nil
}

// versionedCodec - prepend a single version byte to the packed value
//
// rows written by an older layout are decoded through the older
// function, so reads keep working between the schema bump and the
// eager rewrite
type versionedCodec[T any] struct {
	version byte
	base    Codec[T]
	older   func(version byte, buffer []byte) (T, error)
}

// NewVersioned - wrap a codec with a version byte
func NewVersioned[T any](version byte, base Codec[T], older func(byte, []byte) (T, error)) Codec[T] {
	return versionedCodec[T]{version: version, base: base, older: older}
}

func (c versionedCodec[T]) Pack(value T) ([]byte, error) {
	packed, err := c.base.Pack(value)
	if err != nil {
		return nil, err
	}
	buffer := make([]byte, 0, 1+len(packed))
	buffer = append(buffer, c.version)
	return append(buffer, packed...), nil
}

func (c versionedCodec[T]) Unpack(buffer []byte) (T, error) {
	var zero T
	if len(buffer) == 0 {
		return zero, fault.CannotDecodeRecord
	}
	if buffer[0] == c.version {
		return c.base.Unpack(buffer[1:])
	}
	if c.older != nil {
		return c.older(buffer[0], buffer[1:])
	}
	return zero, fault.CannotDecodeRecord
}

// the versioned header value codec shared by the canonical and ommer
// header tables
func headerValueCodec() Codec[*blockrecord.Header] {
	return NewVersioned[*blockrecord.Header](headerVersion, headerCodec{}, unpackOlderHeader)
}

func unpackOlderHeader(version byte, buffer []byte) (*blockrecord.Header, error) {
	if version != 0 {
		return nil, fault.CannotDecodeRecord
	}
	header, ok := blockrecord.UnpackHeaderV0(buffer)
	if !ok {
		return nil, fault.CannotDecodeRecord
	}
	return header, nil
}
