// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
)

// Body - every transaction of a block in position order
//
// a block below the body marker with no transactions returns an empty
// slice; a block at or above the marker also returns an empty slice,
// callers distinguish the two through BodyMarker
func (txn *ReadTxn) Body(number uint64) ([]*blockrecord.Transaction, error) {
	return globalData.tables.txs.GetAll(txn, number)
}

// BodyMarker - the next block number the body store expects
func (txn *ReadTxn) BodyMarker() (uint64, error) {
	return txn.Marker(MarkerBody)
}

// TransactionAt - a single transaction by block number and position
func (txn *ReadTxn) TransactionAt(number uint64, index uint32) (*blockrecord.Transaction, bool, error) {
	return globalData.tables.txs.Get(txn, number, index)
}

// TransactionByDigest - locate a transaction anywhere in the chain
func (txn *ReadTxn) TransactionByDigest(digest blockdigest.Digest) (*blockrecord.Transaction, TxPosition, error) {
	position, present, err := globalData.tables.txHashes.Get(txn, digest)
	if err != nil || !present {
		return nil, TxPosition{}, err
	}
	tx, present, err := globalData.tables.txs.Get(txn, position.BlockNumber, position.Index)
	if err != nil || !present {
		return nil, TxPosition{}, err
	}
	return tx, position, nil
}

// AppendBody - store all transactions of the next block
//
// number must equal the body marker; the digest index rows are
// written in the same transaction
func (txn *WriteTxn) AppendBody(number uint64, txs []*blockrecord.Transaction) error {
	err := checkMarker(txn, MarkerBody, number)
	if err != nil {
		return err
	}

	for i, tx := range txs {
		err = globalData.tables.txs.Insert(txn, number, uint32(i), tx)
		if err != nil {
			return err
		}
		err = globalData.tables.txHashes.Upsert(txn, tx.Digest, TxPosition{BlockNumber: number, Index: uint32(i)})
		if err != nil {
			return err
		}
	}

	setMarker(txn, MarkerBody, number+1)
	return nil
}
