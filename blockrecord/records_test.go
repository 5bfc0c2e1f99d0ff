// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/util"
)

func sampleHeader(n uint64) *blockrecord.Header {
	return &blockrecord.Header{
		Number:           n,
		Digest:           blockdigest.NewDigest([]byte{byte(n), 1}),
		ParentDigest:     blockdigest.NewDigest([]byte{byte(n), 2}),
		StateRoot:        blockdigest.NewDigest([]byte{byte(n), 3}),
		Timestamp:        1700000000 + n,
		TransactionCount: 3 * n,
	}
}

func TestHeaderPackUnpack(t *testing.T) {
	for _, n := range []uint64{0, 1, 127, 128, 1 << 33} {
		header := sampleHeader(n)
		packed := header.Pack()
		back, ok := blockrecord.UnpackHeader(packed)
		assert.True(t, ok, "unpack header %d", n)
		assert.Equal(t, header, back, "header %d round trip", n)
	}
}

func TestHeaderUnpackRejectsDamage(t *testing.T) {
	packed := sampleHeader(9).Pack()

	_, ok := blockrecord.UnpackHeader(packed[:len(packed)-1])
	assert.False(t, ok, "truncated buffer must fail")

	_, ok = blockrecord.UnpackHeader(append(packed, 0x00))
	assert.False(t, ok, "trailing bytes must fail")

	_, ok = blockrecord.UnpackHeader(nil)
	assert.False(t, ok, "empty buffer must fail")
}

// version 0 layout has no transaction count
func TestHeaderUnpackV0(t *testing.T) {
	header := sampleHeader(5)
	packed := header.Pack()

	// strip the trailing transaction count varint to fabricate a v0 row
	countLen := len(util.ToVarint64(header.TransactionCount))
	v0 := packed[:len(packed)-countLen]

	back, ok := blockrecord.UnpackHeaderV0(v0)
	assert.True(t, ok, "unpack v0 header")
	assert.Equal(t, uint64(0), back.TransactionCount, "migrated count defaults to zero")
	assert.Equal(t, header.Digest, back.Digest, "digest survives")
	assert.Equal(t, header.Timestamp, back.Timestamp, "timestamp survives")
}

func TestTransactionPackUnpack(t *testing.T) {
	tx := &blockrecord.Transaction{
		Digest:  blockdigest.NewDigest([]byte("tx")),
		Payload: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	back, ok := blockrecord.UnpackTransaction(tx.Pack())
	assert.True(t, ok, "unpack transaction")
	assert.Equal(t, tx, back, "transaction round trip")

	empty := &blockrecord.Transaction{Digest: tx.Digest, Payload: []byte{}}
	back, ok = blockrecord.UnpackTransaction(empty.Pack())
	assert.True(t, ok, "unpack empty payload")
	assert.Equal(t, empty, back, "empty payload round trip")
}

func TestStateDiffPackUnpack(t *testing.T) {
	diff := &blockrecord.StateDiff{
		DeployedContracts: []blockrecord.DeployedContract{
			{
				Address:     blockdigest.NewDigest([]byte("contract-1")),
				ClassDigest: blockdigest.NewDigest([]byte("class-1")),
			},
		},
		StorageDiffs: []blockrecord.ContractStorageDiff{
			{
				Address: blockdigest.NewDigest([]byte("contract-1")),
				Entries: []blockrecord.StorageEntry{
					{
						Key:   blockdigest.NewDigest([]byte("cell-0")),
						Value: blockrecord.Word{0x01},
					},
					{
						Key:   blockdigest.NewDigest([]byte("cell-1")),
						Value: blockrecord.Word{0x02, 0xff},
					},
				},
			},
		},
		Nonces: []blockrecord.ContractNonce{
			{Address: blockdigest.NewDigest([]byte("contract-1")), Nonce: 42},
		},
		DeclaredClasses: []blockdigest.Digest{
			blockdigest.NewDigest([]byte("class-1")),
		},
	}

	back, ok := blockrecord.UnpackStateDiff(diff.Pack())
	assert.True(t, ok, "unpack state diff")
	assert.Equal(t, diff, back, "state diff round trip")
}

func TestStateDiffEmpty(t *testing.T) {
	diff := &blockrecord.StateDiff{}
	back, ok := blockrecord.UnpackStateDiff(diff.Pack())
	assert.True(t, ok, "unpack empty diff")
	assert.Equal(t, diff, back, "empty diff round trip")

	_, ok = blockrecord.UnpackStateDiff([]byte{})
	assert.False(t, ok, "empty buffer must fail")
}

func TestCompiledClassPackUnpack(t *testing.T) {
	class := &blockrecord.CompiledClass{
		ClassDigest: blockdigest.NewDigest([]byte("class")),
		Program:     []byte{0x48, 0x18, 0x06, 0x80, 0x01},
		EntryPoints: []blockrecord.EntryPoint{
			{Selector: blockrecord.Word{0xaa}, Offset: 0},
			{Selector: blockrecord.Word{0xbb}, Offset: 300},
		},
	}
	back, ok := blockrecord.UnpackCompiledClass(class.Pack())
	assert.True(t, ok, "unpack compiled class")
	assert.Equal(t, class, back, "compiled class round trip")

	_, ok = blockrecord.UnpackCompiledClass(class.Pack()[:10])
	assert.False(t, ok, "truncated class must fail")
}

func TestBlockStatus(t *testing.T) {
	assert.Equal(t, "finalised", blockrecord.StatusFinalised.String(), "status name")
	assert.True(t, blockrecord.ValidBlockStatus(0x03), "rejected is valid")
	assert.False(t, blockrecord.ValidBlockStatus(0x04), "0x04 is not a status")
}
