// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// CompiledClass - compiled bytecode by class digest; nil if not stored
func (txn *ReadTxn) CompiledClass(digest blockdigest.Digest) (*blockrecord.CompiledClass, error) {
	location, present, err := globalData.tables.classes.Get(txn, digest)
	if err != nil || !present {
		return nil, err
	}
	payload, err := readBlob(&globalData.classBlob, location)
	if err != nil {
		return nil, err
	}
	class, ok := blockrecord.UnpackCompiledClass(payload)
	if !ok {
		return nil, fault.CannotDecodeRecord
	}
	return class, nil
}

// CompiledClassMarker - the next block number the class store expects
func (txn *ReadTxn) CompiledClassMarker() (uint64, error) {
	return txn.Marker(MarkerCompiledClass)
}

// AppendCompiledClasses - store the classes declared by the next block
//
// classes are keyed by digest, not block number; the marker still
// tracks which block's declarations are present
func (txn *WriteTxn) AppendCompiledClasses(number uint64, classes []*blockrecord.CompiledClass) error {
	err := checkMarker(txn, MarkerCompiledClass, number)
	if err != nil {
		return err
	}

	for _, class := range classes {
		location, err := appendBlob(txn, blobClass, &globalData.classBlob, class.Pack())
		if err != nil {
			return err
		}
		err = globalData.tables.classes.Insert(txn, class.ClassDigest, location)
		if err != nil {
			return err
		}
	}

	setMarker(txn, MarkerCompiledClass, number+1)
	return nil
}
