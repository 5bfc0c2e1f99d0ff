// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// currentDBVersion - the schema version this build reads and writes
//
// history:
//   0  initial layout, headers without transaction count
//   1  header rows re-encoded with transaction count
//   2  digest index pools introduced in their present shape
const currentDBVersion uint32 = 2

// the version row sits outside every pool: no printable prefix byte
// can collide with the leading 0x00
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// VersionMismatchError - the store was written by a different schema
// version and this process is not allowed to migrate it
type VersionMismatchError struct {
	Stored  uint32
	Current uint32
}

func (e VersionMismatchError) Error() string {
	return fmt.Sprintf("schema version mismatch: stored: %d  current: %d", e.Stored, e.Current)
}

func getVersion(db *leveldb.DB) (uint32, bool, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(value) != 4 {
		return 0, false, VersionMismatchError{Stored: 0, Current: currentDBVersion}
	}
	return binary.BigEndian.Uint32(value), true, nil
}

// stamp a version inside the batch that performs the migration, so
// data rewrite and version bump land atomically
func putVersion(batch *leveldb.Batch, version uint32) {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, version)
	batch.Put(versionKey, value)
}
