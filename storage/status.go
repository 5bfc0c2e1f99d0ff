// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// BlockStatus - the lifecycle state of a stored block
func (txn *ReadTxn) BlockStatus(number uint64) (blockrecord.BlockStatus, bool, error) {
	return globalData.tables.statuses.Get(txn, number)
}

// StatusMarker - the next block number the status store expects
func (txn *ReadTxn) StatusMarker() (uint64, error) {
	return txn.Marker(MarkerStatus)
}

// AppendStatus - store the initial status of the next block
func (txn *WriteTxn) AppendStatus(number uint64, status blockrecord.BlockStatus) error {
	err := checkMarker(txn, MarkerStatus, number)
	if err != nil {
		return err
	}
	err = globalData.tables.statuses.Insert(txn, number, status)
	if err != nil {
		return err
	}
	setMarker(txn, MarkerStatus, number+1)
	return nil
}

// SetBlockStatus - update the status of an already appended block
//
// the only in-place update of the store: status transitions happen
// long after the block was appended
func (txn *WriteTxn) SetBlockStatus(number uint64, status blockrecord.BlockStatus) error {
	marker, err := txn.Marker(MarkerStatus)
	if err != nil {
		return err
	}
	if number >= marker {
		return fault.InvalidBlockNumber
	}
	return globalData.tables.statuses.Upsert(txn, number, status)
}
