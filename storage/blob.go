// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blobfile"
)

// blob file kinds: keys of the file offsets pool
const (
	blobStateDiff byte = 'D'
	blobClass     byte = 'C'
)

// append a compressed record to a blob file, advancing the offsets
// row inside the same transaction
//
// the blob bytes are written to the mapping immediately; on abort the
// offsets row stays behind and the bytes are overwritten by the next
// append
func appendBlob(txn *WriteTxn, kind byte, blob *blobWriterHandle, payload []byte) (blobfile.LocationInFile, error) {
	offset, _, err := Pool.FileOffsets.GetN(txn, []byte{kind})
	if err != nil {
		return blobfile.LocationInFile{}, err
	}
	location, err := blob.writer.InsertCounted(offset, globalData.comp.compress(payload))
	if err != nil {
		return blobfile.LocationInFile{}, err
	}
	Pool.FileOffsets.PutN(txn, []byte{kind}, location.NextOffset())
	return location, nil
}

// fetch and decompress a blob record
func readBlob(blob *blobWriterHandle, location blobfile.LocationInFile) ([]byte, error) {
	frame, err := blob.reader.GetCounted(location)
	if err != nil {
		return nil, err
	}
	return globalData.comp.decompress(frame)
}
