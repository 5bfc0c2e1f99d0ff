// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/util"
)

// Transaction - a transaction as stored inside a block body
//
// the payload is the already packed wire form; the storage engine does
// not interpret it
type Transaction struct {
	Digest  blockdigest.Digest `json:"digest"`
	Payload []byte             `json:"payload"`
}

// Pack - convert the transaction to its binary form
func (tx *Transaction) Pack() []byte {
	buffer := make([]byte, 0, blockdigest.Length+util.Varint64MaximumBytes+len(tx.Payload))
	buffer = append(buffer, tx.Digest[:]...)
	buffer = append(buffer, util.ToVarint64(uint64(len(tx.Payload)))...)
	buffer = append(buffer, tx.Payload...)
	return buffer
}

// UnpackTransaction - rebuild a transaction from its binary form
func UnpackTransaction(buffer []byte) (*Transaction, bool) {
	if len(buffer) < blockdigest.Length {
		return nil, false
	}
	tx := &Transaction{}
	copy(tx.Digest[:], buffer[:blockdigest.Length])
	buffer = buffer[blockdigest.Length:]

	length, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	if uint64(len(buffer)) != length {
		return nil, false
	}
	tx.Payload = make([]byte, length)
	copy(tx.Payload, buffer)
	return tx, true
}
