// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/fault"
)

// Table - a typed view over one pool
//
// keys are packed with a codec whose byte order matches the intended
// iteration order; values go through their codec unchanged
type Table[K any, V any] struct {
	pool   *PoolHandle
	keys   Codec[K]
	values Codec[V]
}

// NewTable - bind codecs to a pool
func NewTable[K any, V any](pool *PoolHandle, keys Codec[K], values Codec[V]) Table[K, V] {
	return Table[K, V]{pool: pool, keys: keys, values: values}
}

// Get - fetch and decode one value; the second return is false when
// the key is absent
func (t Table[K, V]) Get(txn Txn, key K) (V, bool, error) {
	var zero V

	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return zero, false, err
	}
	buffer, err := t.pool.Get(txn, packedKey)
	if err != nil {
		return zero, false, err
	}
	if buffer == nil {
		return zero, false, nil
	}
	value, err := t.values.Unpack(buffer)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Has - check for a key without decoding the value
func (t Table[K, V]) Has(txn Txn, key K) (bool, error) {
	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return false, err
	}
	return t.pool.Has(txn, packedKey)
}

// Upsert - store a value, overwriting any previous one
func (t Table[K, V]) Upsert(txn *WriteTxn, key K, value V) error {
	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return err
	}
	packedValue, err := t.values.Pack(value)
	if err != nil {
		return err
	}
	t.pool.Put(txn, packedKey, packedValue)
	return nil
}

// Insert - store a value for a key that must not exist yet
func (t Table[K, V]) Insert(txn *WriteTxn, key K, value V) error {
	present, err := t.Has(txn, key)
	if err != nil {
		return err
	}
	if present {
		return fault.KeyExists
	}
	return t.Upsert(txn, key, value)
}

// Delete - remove a key; removing an absent key is not an error
func (t Table[K, V]) Delete(txn *WriteTxn, key K) error {
	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return err
	}
	t.pool.Delete(txn, packedKey)
	return nil
}

// Range - run a function over all entries in key order
func (t Table[K, V]) Range(txn Txn, f func(K, V) error) error {
	return t.pool.NewFetchCursor(txn).Map(func(key []byte, value []byte) error {
		k, err := t.keys.Unpack(key)
		if err != nil {
			return err
		}
		v, err := t.values.Unpack(value)
		if err != nil {
			return err
		}
		return f(k, v)
	})
}
