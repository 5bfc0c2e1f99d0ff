// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/meridian-chain/meridiand/fault"
)

// one exported key/value pair
type dumpRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DumpPool - export one pool as JSON lines of hex key/value pairs
//
// the export runs under its own snapshot, so a concurrent writer does
// not tear it
func DumpPool(name string, w io.Writer) error {
	globalData.RLock()
	pool, ok := globalData.poolByName[name]
	globalData.RUnlock()
	if !ok {
		return fault.PoolNotFound
	}

	txn, err := NewReadTxn()
	if err != nil {
		return err
	}
	defer txn.Done()

	encoder := json.NewEncoder(w)
	return pool.NewFetchCursor(txn).Map(func(key []byte, value []byte) error {
		return encoder.Encode(dumpRecord{
			Key:   hex.EncodeToString(key),
			Value: hex.EncodeToString(value),
		})
	})
}

// PoolStats - number of records per pool
func PoolStats() (map[string]int, error) {
	txn, err := NewReadTxn()
	if err != nil {
		return nil, err
	}
	defer txn.Done()

	globalData.RLock()
	pools := globalData.poolList
	globalData.RUnlock()

	stats := make(map[string]int)
	for _, pool := range pools {
		count := 0
		err := pool.NewFetchCursor(txn).Map(func([]byte, []byte) error {
			count += 1
			return nil
		})
		if err != nil {
			return nil, err
		}
		stats[pool.Name()] = count
	}
	return stats, nil
}
