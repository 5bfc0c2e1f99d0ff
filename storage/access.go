// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// dataAccess - read side view of the key/value store
//
// a read transaction is backed by a LevelDB snapshot, a write
// transaction by the committed state overlaid with its own pending
// batch
type dataAccess interface {
	Get(key []byte) ([]byte, error) // nil slice when absent
	Has(key []byte) (bool, error)
	Iterate(rg *ldb_util.Range) kvIterator
}

// kvIterator - the subset of LevelDB's iterator the pools use; the
// write transaction substitutes a merged committed plus pending view
type kvIterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// snapshot backed read access
type snapshotAccess struct {
	snapshot *leveldb.Snapshot
}

func (access *snapshotAccess) Get(key []byte) ([]byte, error) {
	value, err := access.snapshot.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (access *snapshotAccess) Has(key []byte) (bool, error) {
	return access.snapshot.Has(key, nil)
}

func (access *snapshotAccess) Iterate(rg *ldb_util.Range) kvIterator {
	return access.snapshot.NewIterator(rg, nil)
}

type cacheEntry struct {
	deleted bool
	value   []byte
}

// batch plus write-through cache, so a write transaction reads its
// own uncommitted puts and deletes
type batchAccess struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	cache map[string]cacheEntry
}

func newBatchAccess(db *leveldb.DB) *batchAccess {
	return &batchAccess{
		db:    db,
		batch: new(leveldb.Batch),
		cache: make(map[string]cacheEntry),
	}
}

func (access *batchAccess) Get(key []byte) ([]byte, error) {
	if entry, ok := access.cache[string(key)]; ok {
		if entry.deleted {
			return nil, nil
		}
		return entry.value, nil
	}
	value, err := access.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (access *batchAccess) Has(key []byte) (bool, error) {
	if entry, ok := access.cache[string(key)]; ok {
		return !entry.deleted, nil
	}
	return access.db.Has(key, nil)
}

func (access *batchAccess) Iterate(rg *ldb_util.Range) kvIterator {
	pending := make([]string, 0, len(access.cache))
	for key := range access.cache {
		if nil != rg {
			if nil != rg.Start && key < string(rg.Start) {
				continue
			}
			if nil != rg.Limit && key >= string(rg.Limit) {
				continue
			}
		}
		pending = append(pending, key)
	}
	sort.Strings(pending) // string compare is bytewise, same order as LevelDB

	return &overlayIterator{
		db:      access.db.NewIterator(rg, nil),
		cache:   access.cache,
		pending: pending,
	}
}

// merge of the committed iterator and the pending cache entries in key
// order; cache entries shadow committed rows and tombstones hide them
type overlayIterator struct {
	db      iterator.Iterator
	cache   map[string]cacheEntry
	pending []string
	started bool
	dbValid bool
	key     []byte
	value   []byte
}

func (iter *overlayIterator) Next() bool {
	if !iter.started {
		iter.started = true
		iter.dbValid = iter.advanceDB()
	}
	for {
		havePending := len(iter.pending) > 0

		if iter.dbValid && (!havePending || string(iter.db.Key()) < iter.pending[0]) {
			iter.key = append(iter.key[:0], iter.db.Key()...)
			iter.value = append(iter.value[:0], iter.db.Value()...)
			iter.dbValid = iter.advanceDB()
			return true
		}
		if !havePending {
			return false
		}

		key := iter.pending[0]
		iter.pending = iter.pending[1:]
		entry := iter.cache[key]
		if entry.deleted {
			continue
		}
		iter.key = append(iter.key[:0], key...)
		iter.value = append(iter.value[:0], entry.value...)
		return true
	}
}

// step the committed iterator past any key the overlay owns
func (iter *overlayIterator) advanceDB() bool {
	for iter.db.Next() {
		if _, ok := iter.cache[string(iter.db.Key())]; !ok {
			return true
		}
	}
	return false
}

func (iter *overlayIterator) Key() []byte {
	return iter.key
}

func (iter *overlayIterator) Value() []byte {
	return iter.value
}

func (iter *overlayIterator) Release() {
	iter.db.Release()
}

func (iter *overlayIterator) Error() error {
	return iter.db.Error()
}

func (access *batchAccess) put(key []byte, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	access.batch.Put(key, stored)
	access.cache[string(key)] = cacheEntry{value: stored}
}

func (access *batchAccess) delete(key []byte) {
	access.batch.Delete(key)
	access.cache[string(key)] = cacheEntry{deleted: true}
}

// atomically apply all pending puts and deletes
func (access *batchAccess) commit() error {
	return access.db.Write(access.batch, nil)
}
