// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/fault"
)

// Txn - the read capability shared by both transaction kinds
//
// every pool and table operation takes a Txn, so read only code
// compiles against either transaction kind
type Txn interface {
	access() dataAccess
}

// ReadTxn - a consistent read only view of the store
//
// backed by a LevelDB snapshot taken at creation; writers committing
// afterwards are never observed
type ReadTxn struct {
	data dataAccess
	done func()
}

func (txn *ReadTxn) access() dataAccess {
	return txn.data
}

// NewReadTxn - take a snapshot of the store
//
// any number of read transactions may be open concurrently; call Done
// to release the snapshot
func NewReadTxn() (*ReadTxn, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	snapshot, err := globalData.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &ReadTxn{
		data: &snapshotAccess{snapshot: snapshot},
		done: snapshot.Release,
	}, nil
}

// Done - release the snapshot
func (txn *ReadTxn) Done() {
	if txn.done != nil {
		txn.done()
		txn.done = nil
	}
}

// WriteTxn - the single read/write transaction
//
// reads observe the committed state overlaid with this transaction's
// own writes; nothing becomes visible to readers before Commit
type WriteTxn struct {
	ReadTxn
	writes *batchAccess
	closed bool
}

// NewWriteTxn - acquire the write transaction
//
// only one write transaction exists at a time; with WriteLockWait set
// the call blocks until the current holder finishes, otherwise it
// fails immediately with WriteTransactionBusy
func NewWriteTxn() (*WriteTxn, error) {
	globalData.RLock()

	if !globalData.initialised {
		globalData.RUnlock()
		return nil, fault.NotInitialised
	}
	if globalData.cfg.ReadOnly {
		globalData.RUnlock()
		return nil, fault.DatabaseIsReadOnly
	}

	wait := globalData.cfg.WriteLockWait
	db := globalData.db
	globalData.RUnlock()

	if wait {
		globalData.writeLock.Lock()
	} else if !globalData.writeLock.TryLock() {
		return nil, fault.WriteTransactionBusy
	}

	writes := newBatchAccess(db)
	return &WriteTxn{
		ReadTxn: ReadTxn{data: writes},
		writes:  writes,
	}, nil
}

// Commit - atomically apply all writes of the transaction
//
// blob file pages are synced first, so every location the batch
// exposes refers to durable bytes
func (txn *WriteTxn) Commit() error {
	if txn.closed {
		return fault.TransactionIsClosed
	}
	txn.closed = true
	defer globalData.writeLock.Unlock()

	for _, blob := range []*blobWriterHandle{&globalData.stateBlob, &globalData.classBlob} {
		if blob.writer != nil {
			err := blob.writer.Flush()
			if err != nil {
				return err
			}
		}
	}
	return txn.writes.commit()
}

// Abort - discard all writes of the transaction
//
// blob bytes already appended stay unreferenced; the next append
// overwrites them because the offsets row was never committed
func (txn *WriteTxn) Abort() {
	if txn.closed {
		return
	}
	txn.closed = true
	globalData.writeLock.Unlock()
}
