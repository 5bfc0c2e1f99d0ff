// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/meridian-chain/meridiand/fault"
)

// PoolHandle - handle for a data pool
//
// a handle carries only the pool prefix; all actual data access goes
// through a transaction
type PoolHandle struct {
	prefix  byte
	name    string
	rebuild bool // lives in the index section, dropped on reindex
}

// Name - the name the pool was registered under
func (p *PoolHandle) Name() string {
	return p.name
}

// prefix a key for the pool
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixed := make([]byte, 1, 1+len(key))
	prefixed[0] = p.prefix
	return append(prefixed, key...)
}

// key range covering the whole pool
func (p *PoolHandle) limits() *ldb_util.Range {
	return prefixRange([]byte{p.prefix})
}

// Get - retrieve a value by key; nil if the key is absent
func (p *PoolHandle) Get(txn Txn, key []byte) ([]byte, error) {
	return txn.access().Get(p.prefixKey(key))
}

// GetN - retrieve a big endian uint64 value by key
//
// a present row of the wrong width is corruption, not absence
func (p *PoolHandle) GetN(txn Txn, key []byte) (uint64, bool, error) {
	buffer, err := p.Get(txn, key)
	if err != nil {
		return 0, false, err
	}
	if buffer == nil {
		return 0, false, nil
	}
	if 8 != len(buffer) {
		return 0, false, fault.CannotDecodeRecord
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(txn Txn, key []byte) (bool, error) {
	return txn.access().Has(p.prefixKey(key))
}

// Put - store a key/value pair
func (p *PoolHandle) Put(txn *WriteTxn, key []byte, value []byte) {
	txn.writes.put(p.prefixKey(key), value)
}

// PutN - store a big endian uint64 value
func (p *PoolHandle) PutN(txn *WriteTxn, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(txn, key, buffer)
}

// Delete - remove a key; removing an absent key is not an error
func (p *PoolHandle) Delete(txn *WriteTxn, key []byte) {
	txn.writes.delete(p.prefixKey(key))
}
