// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/fault"
)

// FetchCursor - to fetch key/value pairs in key order from one pool
type FetchCursor struct {
	pool    *PoolHandle
	txn     Txn
	current []byte
}

// NewFetchCursor - create a cursor positioned at the start of the pool
func (p *PoolHandle) NewFetchCursor(txn Txn) *FetchCursor {
	return &FetchCursor{
		pool: p,
		txn:  txn,
	}
}

// Seek - position the cursor at or after a key inside the pool
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.current = cursor.pool.prefixKey(key)
	return cursor
}

// Element - a key/value pair without the pool prefix
type Element struct {
	Key   []byte
	Value []byte
}

// Fetch - up to count elements starting at the cursor position,
// advancing the cursor past the last element returned
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	rg := cursor.pool.limits()
	if cursor.current != nil {
		rg.Start = cursor.current
	}

	iter := cursor.txn.access().Iterate(rg)
	defer iter.Release()

	results := make([]Element, 0, count)
	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		element := Element{
			Key:   make([]byte, len(key)-1),
			Value: make([]byte, len(value)),
		}
		copy(element.Key, key[1:]) // strip the pool prefix
		copy(element.Value, value)
		results = append(results, element)

		cursor.current = AddOne(key)
		if len(results) >= count {
			break
		}
	}
	return results, iter.Error()
}

// Map - run a function over every element of the pool in key order
//
// the iteration observes the transaction's view of the pool; stopping
// early is done by returning a non nil error from the function
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	rg := cursor.pool.limits()
	if cursor.current != nil {
		rg.Start = cursor.current
	}

	iter := cursor.txn.access().Iterate(rg)
	defer iter.Release()

	for iter.Next() {
		err := f(iter.Key()[1:], iter.Value())
		if err != nil {
			return err
		}
	}
	return iter.Error()
}
