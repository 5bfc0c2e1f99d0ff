// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// OmmerHeader - a non canonical header by digest; nil if not stored
func (txn *ReadTxn) OmmerHeader(digest blockdigest.Digest) (*blockrecord.Header, error) {
	header, present, err := globalData.tables.ommers.Get(txn, digest)
	if err != nil || !present {
		return nil, err
	}
	return header, nil
}

// StoreOmmerHeader - keep a header that lost its place in the chain
//
// ommers sit outside the marker discipline: they are keyed by digest
// and may arrive in any order, but a digest is stored only once
func (txn *WriteTxn) StoreOmmerHeader(digest blockdigest.Digest, header *blockrecord.Header) error {
	err := globalData.tables.ommers.Insert(txn, digest, header)
	if fault.KeyExists == err {
		return fault.OmmerExists
	}
	return err
}
