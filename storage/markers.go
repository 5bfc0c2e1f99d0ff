// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
)

// MarkerKind - one append-only entity store
//
// the marker of a store is the next block number it expects; all
// blocks below the marker are fully present
type MarkerKind byte

const (
	MarkerHeader        MarkerKind = 'H'
	MarkerBody          MarkerKind = 'B'
	MarkerStatus        MarkerKind = 'S'
	MarkerState         MarkerKind = 'D'
	MarkerCompiledClass MarkerKind = 'C'
)

// String - printable marker name
func (kind MarkerKind) String() string {
	switch kind {
	case MarkerHeader:
		return "header"
	case MarkerBody:
		return "body"
	case MarkerStatus:
		return "status"
	case MarkerState:
		return "state"
	case MarkerCompiledClass:
		return "compiled class"
	default:
		return "unknown"
	}
}

// MarkerMismatchError - an append skipped ahead or fell behind
//
// Expected is the marker of the store, Found is the block number the
// caller supplied
type MarkerMismatchError struct {
	Kind     MarkerKind
	Expected uint64
	Found    uint64
}

func (e MarkerMismatchError) Error() string {
	return fmt.Sprintf("%s marker mismatch: expected: %d  found: %d", e.Kind, e.Expected, e.Found)
}

// Marker - the next block number an entity store expects
//
// a store that never appended reports zero
func (txn *ReadTxn) Marker(kind MarkerKind) (uint64, error) {
	marker, _, err := Pool.Markers.GetN(txn, []byte{byte(kind)})
	return marker, err
}

// fail unless number is exactly the next expected block
func checkMarker(txn *WriteTxn, kind MarkerKind, number uint64) error {
	marker, err := txn.Marker(kind)
	if err != nil {
		return err
	}
	if number != marker {
		return MarkerMismatchError{Kind: kind, Expected: marker, Found: number}
	}
	return nil
}

func setMarker(txn *WriteTxn, kind MarkerKind, next uint64) {
	Pool.Markers.PutN(txn, []byte{byte(kind)}, next)
}
