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

// StateDiff - the full state delta of a block; nil if not stored
func (txn *ReadTxn) StateDiff(number uint64) (*blockrecord.StateDiff, error) {
	location, present, err := globalData.tables.stateDiffs.Get(txn, number)
	if err != nil || !present {
		return nil, err
	}
	payload, err := readBlob(&globalData.stateBlob, location)
	if err != nil {
		return nil, err
	}
	diff, ok := blockrecord.UnpackStateDiff(payload)
	if !ok {
		return nil, fault.CannotDecodeRecord
	}
	return diff, nil
}

// StateMarker - the next block number the state store expects
func (txn *ReadTxn) StateMarker() (uint64, error) {
	return txn.Marker(MarkerState)
}

// StorageEntryAt - the value written to a storage cell by exactly
// block number; false if that block did not touch the cell
func (txn *ReadTxn) StorageEntryAt(contract blockdigest.Digest, key blockdigest.Digest, number uint64) (blockrecord.Word, bool, error) {
	return globalData.tables.storage.Get(txn, storageCell{contract: contract, key: key}, number)
}

// StorageAt - the value of a storage cell as of block number: the
// most recent write at or below it; false if never written by then
func (txn *ReadTxn) StorageAt(contract blockdigest.Digest, key blockdigest.Digest, number uint64) (blockrecord.Word, bool, error) {
	var value blockrecord.Word
	found := false
	err := globalData.tables.storage.scan(txn, storageCell{contract: contract, key: key}, func(block uint64, word blockrecord.Word) error {
		if block > number {
			return errStopIteration
		}
		value = word
		found = true
		return nil
	})
	if err == errStopIteration {
		err = nil
	}
	if err != nil {
		return blockrecord.Word{}, false, err
	}
	return value, found, nil
}

var errStopIteration = fault.ProcessError("stop iteration")

// ContractStorageRow - one historical write inside a contract
type ContractStorageRow struct {
	Key         blockdigest.Digest
	BlockNumber uint64
	Value       blockrecord.Word
}

// ContractStorage - every stored write of one contract, ordered by
// cell key then block number; a single shared prefix range scan
func (txn *ReadTxn) ContractStorage(contract blockdigest.Digest) ([]ContractStorageRow, error) {
	prefix := Pool.ContractStorage.prefixKey(contract[:])
	iter := txn.access().Iterate(prefixRange(prefix))
	defer iter.Release()

	rows := []ContractStorageRow{}
	for iter.Next() {
		key := iter.Key()[len(prefix):]
		if len(key) != blockdigest.Length+8 {
			return nil, fault.InvalidKeyLength
		}
		row := ContractStorageRow{}
		copy(row.Key[:], key[:blockdigest.Length])
		number, err := uint64Codec{}.Unpack(key[blockdigest.Length:])
		if err != nil {
			return nil, err
		}
		row.BlockNumber = number

		value, err := wordCodec{}.Unpack(iter.Value())
		if err != nil {
			return nil, err
		}
		row.Value = value
		rows = append(rows, row)
	}
	return rows, iter.Error()
}

// AppendStateDiff - store the state delta of the next block
//
// the packed diff goes to the blob file; the location row and the
// per-cell storage rows are written in the same transaction
func (txn *WriteTxn) AppendStateDiff(number uint64, diff *blockrecord.StateDiff) error {
	err := checkMarker(txn, MarkerState, number)
	if err != nil {
		return err
	}

	location, err := appendBlob(txn, blobStateDiff, &globalData.stateBlob, diff.Pack())
	if err != nil {
		return err
	}
	err = globalData.tables.stateDiffs.Insert(txn, number, location)
	if err != nil {
		return err
	}

	for _, contract := range diff.StorageDiffs {
		for _, entry := range contract.Entries {
			cell := storageCell{contract: contract.Address, key: entry.Key}
			err = globalData.tables.storage.Upsert(txn, cell, number, entry.Value)
			if err != nil {
				return err
			}
		}
	}

	setMarker(txn, MarkerState, number+1)
	return nil
}
