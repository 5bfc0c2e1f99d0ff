// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// HashCollisionError - a block digest is already bound to a block
type HashCollisionError struct {
	Digest   blockdigest.Digest
	Existing uint64
}

func (e HashCollisionError) Error() string {
	return fmt.Sprintf("block digest %s already stored for block: %d", e.Digest, e.Existing)
}

// Header - the canonical header of a block; nil if not stored
func (txn *ReadTxn) Header(number uint64) (*blockrecord.Header, error) {
	header, present, err := globalData.tables.headers.Get(txn, number)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return header, nil
}

// HeaderMarker - the next block number the header store expects
func (txn *ReadTxn) HeaderMarker() (uint64, error) {
	return txn.Marker(MarkerHeader)
}

// BlockNumberOfDigest - reverse lookup from block digest to number
func (txn *ReadTxn) BlockNumberOfDigest(digest blockdigest.Digest) (uint64, bool, error) {
	return globalData.tables.blockHashes.Get(txn, digest)
}

// AppendHeader - store the header of the next block
//
// number must equal the header marker; the digest index row is
// written in the same transaction
func (txn *WriteTxn) AppendHeader(number uint64, header *blockrecord.Header) error {
	err := checkMarker(txn, MarkerHeader, number)
	if err != nil {
		return err
	}

	existing, present, err := globalData.tables.blockHashes.Get(txn, header.Digest)
	if err != nil {
		return err
	}
	if present {
		return HashCollisionError{Digest: header.Digest, Existing: existing}
	}

	err = globalData.tables.headers.Insert(txn, number, header)
	if err != nil {
		return err
	}
	err = globalData.tables.blockHashes.Upsert(txn, header.Digest, number)
	if err != nil {
		return err
	}

	setMarker(txn, MarkerHeader, number+1)
	return nil
}

// RevertHeader - remove the most recently appended header
//
// only the block directly below the marker can be reverted; the
// removed header is returned so the caller can requeue it
func (txn *WriteTxn) RevertHeader(number uint64) (*blockrecord.Header, error) {
	marker, err := txn.Marker(MarkerHeader)
	if err != nil {
		return nil, err
	}
	if marker == 0 || number != marker-1 {
		return nil, fault.InvalidBlockNumber
	}

	header, present, err := globalData.tables.headers.Get(txn, number)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, fault.InvalidBlockNumber
	}

	err = globalData.tables.headers.Delete(txn, number)
	if err != nil {
		return nil, err
	}
	err = globalData.tables.blockHashes.Delete(txn, header.Digest)
	if err != nil {
		return nil, err
	}

	setMarker(txn, MarkerHeader, number)
	return header, nil
}
