// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/fault"
)

// DupTable - many sorted values per logical key
//
// the sub key is appended to the main key, so all entries of one
// logical key are physically adjacent and sorted by sub key; both key
// codecs must be fixed size so the physical key splits unambiguously
type DupTable[K any, S any, V any] struct {
	pool   *PoolHandle
	keys   FixedCodec[K]
	subs   FixedCodec[S]
	values Codec[V]
}

// NewDupTable - bind codecs to a pool
func NewDupTable[K any, S any, V any](pool *PoolHandle, keys FixedCodec[K], subs FixedCodec[S], values Codec[V]) DupTable[K, S, V] {
	return DupTable[K, S, V]{pool: pool, keys: keys, subs: subs, values: values}
}

func (t DupTable[K, S, V]) physicalKey(key K, sub S) ([]byte, error) {
	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return nil, err
	}
	packedSub, err := t.subs.Pack(sub)
	if err != nil {
		return nil, err
	}
	return append(packedKey, packedSub...), nil
}

// Get - fetch the value stored under an exact key/sub key pair
func (t DupTable[K, S, V]) Get(txn Txn, key K, sub S) (V, bool, error) {
	var zero V

	physical, err := t.physicalKey(key, sub)
	if err != nil {
		return zero, false, err
	}
	buffer, err := t.pool.Get(txn, physical)
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

// Upsert - store a value under a key/sub key pair
func (t DupTable[K, S, V]) Upsert(txn *WriteTxn, key K, sub S, value V) error {
	physical, err := t.physicalKey(key, sub)
	if err != nil {
		return err
	}
	packedValue, err := t.values.Pack(value)
	if err != nil {
		return err
	}
	t.pool.Put(txn, physical, packedValue)
	return nil
}

// Insert - store a value under a pair that must not exist yet
func (t DupTable[K, S, V]) Insert(txn *WriteTxn, key K, sub S, value V) error {
	physical, err := t.physicalKey(key, sub)
	if err != nil {
		return err
	}
	present, err := t.pool.Has(txn, physical)
	if err != nil {
		return err
	}
	if present {
		return fault.KeyExists
	}
	packedValue, err := t.values.Pack(value)
	if err != nil {
		return err
	}
	t.pool.Put(txn, physical, packedValue)
	return nil
}

// GetAll - every value of one logical key in sub key order
func (t DupTable[K, S, V]) GetAll(txn Txn, key K) ([]V, error) {
	values := []V{}
	err := t.scan(txn, key, func(sub S, value V) error {
		values = append(values, value)
		return nil
	})
	return values, err
}

// SeekValue - the first entry of a logical key whose sub key is at or
// after the given sub key
func (t DupTable[K, S, V]) SeekValue(txn Txn, key K, sub S) (S, V, bool, error) {
	var zeroSub S
	var zeroValue V

	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return zeroSub, zeroValue, false, err
	}
	packedSub, err := t.subs.Pack(sub)
	if err != nil {
		return zeroSub, zeroValue, false, err
	}

	rg := prefixRange(t.pool.prefixKey(packedKey))
	rg.Start = t.pool.prefixKey(append(packedKey, packedSub...))

	iter := txn.access().Iterate(rg)
	defer iter.Release()

	if !iter.Next() {
		return zeroSub, zeroValue, false, iter.Error()
	}

	foundSub, err := t.subs.Unpack(iter.Key()[1+len(packedKey):])
	if err != nil {
		return zeroSub, zeroValue, false, err
	}
	value, err := t.values.Unpack(iter.Value())
	if err != nil {
		return zeroSub, zeroValue, false, err
	}
	return foundSub, value, true, nil
}

// scan - run a function over every entry of one logical key in sub
// key order
func (t DupTable[K, S, V]) scan(txn Txn, key K, f func(S, V) error) error {
	packedKey, err := t.keys.Pack(key)
	if err != nil {
		return err
	}

	iter := txn.access().Iterate(prefixRange(t.pool.prefixKey(packedKey)))
	defer iter.Release()

	for iter.Next() {
		sub, err := t.subs.Unpack(iter.Key()[1+len(packedKey):])
		if err != nil {
			return err
		}
		value, err := t.values.Unpack(iter.Value())
		if err != nil {
			return err
		}
		err = f(sub, value)
		if err != nil {
			return err
		}
	}
	return iter.Error()
}
