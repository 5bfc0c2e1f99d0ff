// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/storage"
	"github.com/meridian-chain/meridiand/util"
)

// rewrite a freshly written store to look like a legacy version 0
// database: no version row, version 0 header rows, no index pools
func downgrade(t *testing.T, dir string) {
	t.Helper()

	db, err := leveldb.OpenFile(filepath.Join(dir, "chain.leveldb"), nil)
	if err != nil {
		t.Fatalf("open raw database: %s", err)
	}
	defer db.Close()

	batch := new(leveldb.Batch)
	batch.Delete([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'})

	iter := db.NewIterator(ldb_util.BytesPrefix([]byte{'H'}), nil)
	for iter.Next() {
		header, ok := blockrecord.UnpackHeader(iter.Value()[1:])
		if !ok {
			t.Fatalf("unpack header for downgrade")
		}
		packed := header.Pack()
		countLen := len(util.ToVarint64(header.TransactionCount))
		v0 := append([]byte{0x00}, packed[:len(packed)-countLen]...)

		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		batch.Put(key, v0)
	}
	iter.Release()

	for _, prefix := range []byte{'2', 'X'} {
		iter := db.NewIterator(ldb_util.BytesPrefix([]byte{prefix}), nil)
		for iter.Next() {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			batch.Delete(key)
		}
		iter.Release()
	}

	err = db.Write(batch, nil)
	if err != nil {
		t.Fatalf("write downgrade batch: %s", err)
	}
}

// a legacy store without a version row upgrades in one open call
func TestMigrateLegacyStore(t *testing.T) {
	dir := t.TempDir()

	err := storage.Initialise(testConfig(dir))
	assert.NoError(t, err, "initialise")

	headers := make([]*blockrecord.Header, 3)
	mustWrite(t, func(txn *storage.WriteTxn) error {
		for n := uint64(0); n < 3; n += 1 {
			headers[n] = makeHeader(n)
			err := txn.AppendHeader(n, headers[n])
			if err != nil {
				return err
			}
		}
		return nil
	})
	assert.NoError(t, storage.Finalise(), "finalise")

	downgrade(t, dir)

	err = storage.Initialise(testConfig(dir))
	assert.NoError(t, err, "initialise over legacy store")

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")

	for n := uint64(0); n < 3; n += 1 {
		header, err := txn.Header(n)
		assert.NoError(t, err, "header %d", n)
		if assert.NotNil(t, header, "header %d", n) {
			// the transaction count is lost by the version 0 layout
			expected := *headers[n]
			expected.TransactionCount = 0
			assert.Equal(t, &expected, header, "migrated header %d", n)
		}

		number, present, err := txn.BlockNumberOfDigest(headers[n].Digest)
		assert.NoError(t, err, "digest lookup %d", n)
		assert.True(t, present, "index rebuilt %d", n)
		assert.Equal(t, n, number, "rebuilt index value %d", n)
	}

	marker, err := txn.HeaderMarker()
	assert.NoError(t, err, "marker")
	assert.Equal(t, uint64(3), marker, "marker survives migration")
	txn.Done()

	// a read only open only accepts the current schema version, so a
	// clean reopen proves the version row was stamped
	assert.NoError(t, storage.Finalise(), "finalise after migration")
	cfg := testConfig(dir)
	cfg.ReadOnly = true
	assert.NoError(t, storage.Initialise(cfg), "read only reopen")
	assert.NoError(t, storage.Finalise(), "final finalise")
}

// a brand new store is stamped with the current version immediately
func TestNewStoreIsCurrent(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, storage.Initialise(testConfig(dir)), "initialise")
	assert.NoError(t, storage.Finalise(), "finalise")

	cfg := testConfig(dir)
	cfg.ReadOnly = true
	assert.NoError(t, storage.Initialise(cfg), "read only reopen")
	assert.NoError(t, storage.Finalise(), "finalise")
}

// a store written by a newer build must be refused
func TestNewerVersionRefused(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, storage.Initialise(testConfig(dir)), "initialise")
	assert.NoError(t, storage.Finalise(), "finalise")

	db, err := leveldb.OpenFile(filepath.Join(dir, "chain.leveldb"), nil)
	assert.NoError(t, err, "open raw database")
	err = db.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, []byte{0x00, 0x00, 0x00, 0x63}, nil)
	assert.NoError(t, err, "bump version")
	db.Close()

	err = storage.Initialise(testConfig(dir))
	mismatch, ok := err.(storage.VersionMismatchError)
	assert.True(t, ok, "error type: %v", err)
	assert.Equal(t, uint32(99), mismatch.Stored, "stored version")
}
