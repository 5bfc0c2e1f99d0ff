// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-chain/meridiand/fault"
	"github.com/meridian-chain/meridiand/storage"
)

// main storage test
func TestPoolPutGetDelete(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.TestData.Put(txn, []byte("key-one"), []byte("value-one"))
		storage.Pool.TestData.Put(txn, []byte("key-two"), []byte("value-two"))
		return nil
	})

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")
	defer txn.Done()

	value, err := storage.Pool.TestData.Get(txn, []byte("key-one"))
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("value-one"), value, "first value")

	present, err := storage.Pool.TestData.Has(txn, []byte("key-two"))
	assert.NoError(t, err, "has")
	assert.True(t, present, "second key present")

	absent, err := storage.Pool.TestData.Get(txn, []byte("no-such-key"))
	assert.NoError(t, err, "get absent")
	assert.Nil(t, absent, "absent key")

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.TestData.Delete(txn, []byte("key-one"))
		return nil
	})

	txn2, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn after delete")
	defer txn2.Done()

	gone, err := storage.Pool.TestData.Get(txn2, []byte("key-one"))
	assert.NoError(t, err, "get deleted")
	assert.Nil(t, gone, "deleted key")
}

// a numeric row of the wrong width reads as corruption, not absence
func TestGetNCorruptRow(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.TestData.PutN(txn, []byte("good"), 42)
		storage.Pool.TestData.Put(txn, []byte("short"), []byte{0x01, 0x02, 0x03})
		return nil
	})

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")
	defer txn.Done()

	value, present, err := storage.Pool.TestData.GetN(txn, []byte("good"))
	assert.NoError(t, err, "get good")
	assert.True(t, present, "good row present")
	assert.Equal(t, uint64(42), value, "good value")

	_, present, err = storage.Pool.TestData.GetN(txn, []byte("short"))
	assert.Equal(t, fault.CannotDecodeRecord, err, "truncated row")
	assert.False(t, present, "truncated row not reported present")

	_, present, err = storage.Pool.TestData.GetN(txn, []byte("absent"))
	assert.NoError(t, err, "absent row")
	assert.False(t, present, "absent row")
}

// a corrupt marker row must stop the append machinery
func TestCorruptMarkerDetected(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.Markers.Put(txn, []byte{'H'}, []byte{0xde, 0xad})
		return nil
	})

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")
	defer txn.Done()

	_, err = txn.HeaderMarker()
	assert.Equal(t, fault.CannotDecodeRecord, err, "corrupt marker")
}

func TestCursorFetch(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		storage.Pool.TestData.Put(txn, []byte{0x01}, []byte("a"))
		storage.Pool.TestData.Put(txn, []byte{0x02}, []byte("b"))
		storage.Pool.TestData.Put(txn, []byte{0x03}, []byte("c"))
		storage.Pool.TestData.Put(txn, []byte{0x04}, []byte("d"))
		return nil
	})

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")
	defer txn.Done()

	cursor := storage.Pool.TestData.NewFetchCursor(txn)
	first, err := cursor.Fetch(2)
	assert.NoError(t, err, "first fetch")
	assert.Equal(t, 2, len(first), "first batch size")
	assert.Equal(t, []byte{0x01}, first[0].Key, "first key")
	assert.Equal(t, []byte{0x02}, first[1].Key, "second key")

	rest, err := cursor.Fetch(10)
	assert.NoError(t, err, "second fetch")
	assert.Equal(t, 2, len(rest), "second batch size")
	assert.Equal(t, []byte{0x03}, rest[0].Key, "third key")
	assert.Equal(t, []byte("d"), rest[1].Value, "fourth value")
}

func TestCursorSeek(t *testing.T) {
	setup(t)

	mustWrite(t, func(txn *storage.WriteTxn) error {
		for i := byte(0); i < 10; i += 1 {
			storage.Pool.TestData.Put(txn, []byte{i}, []byte{i})
		}
		return nil
	})

	txn, err := storage.NewReadTxn()
	assert.NoError(t, err, "read txn")
	defer txn.Done()

	elements, err := storage.Pool.TestData.NewFetchCursor(txn).Seek([]byte{0x07}).Fetch(10)
	assert.NoError(t, err, "fetch after seek")
	assert.Equal(t, 3, len(elements), "elements from 7")
	assert.Equal(t, []byte{0x07}, elements[0].Key, "seek start")
}
