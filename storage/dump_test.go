// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-chain/meridiand/fault"
	"github.com/meridian-chain/meridiand/storage"
)

func TestDumpPool(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.TestData.Put(txn, []byte{0x01}, []byte{0xaa})
		storage.Pool.TestData.Put(txn, []byte{0x02}, []byte{0xbb})
		return nil
	})

	buffer := &bytes.Buffer{}
	err := storage.DumpPool("TestData", buffer)
	assert.NoError(t, err, "dump")

	type record struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	records := []record{}
	scanner := bufio.NewScanner(buffer)
	for scanner.Scan() {
		r := record{}
		assert.NoError(t, json.Unmarshal(scanner.Bytes(), &r), "parse line")
		records = append(records, r)
	}

	assert.Equal(t, []record{
		{Key: "01", Value: "aa"},
		{Key: "02", Value: "bb"},
	}, records, "dumped records in key order")

	err = storage.DumpPool("NoSuchPool", buffer)
	assert.Equal(t, fault.PoolNotFound, err, "unknown pool")
}

func TestPoolStats(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		err := txn.AppendHeader(0, makeHeader(0))
		if err != nil {
			return err
		}
		storage.Pool.TestData.Put(txn, []byte{0x01}, []byte{0x01})
		return nil
	})

	stats, err := storage.PoolStats()
	assert.NoError(t, err, "stats")
	assert.Equal(t, 1, stats["Headers"], "header count")
	assert.Equal(t, 1, stats["BlockHashIndex"], "index count")
	assert.Equal(t, 1, stats["Markers"], "marker count")
	assert.Equal(t, 1, stats["TestData"], "test data count")
	assert.Equal(t, 0, stats["Statuses"], "status count")
}
