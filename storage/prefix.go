// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// AddOne - the immediate successor of a byte string under big endian
// order
//
// the input is treated as an unsigned integer and incremented; a full
// carry yields a longer string with a leading 0x01, so the result is
// always strictly greater than every string of the input length with
// the input as prefix
func AddOne(buffer []byte) []byte {
	result := make([]byte, len(buffer))
	copy(result, buffer)
	for i := len(result) - 1; i >= 0; i -= 1 {
		result[i] += 1
		if result[i] != 0 {
			return result
		}
	}
	// carry out of the top byte: 0xff…ff -> 0x01 00…00
	return append([]byte{0x01}, make([]byte, len(buffer))...)
}

// half open key range covering every key that starts with prefix
//
// when the successor computation carries, no single byte limit of the
// same length exists and the range is left open at the high end
func prefixRange(prefix []byte) *ldb_util.Range {
	start := make([]byte, len(prefix))
	copy(start, prefix)
	limit := AddOne(prefix)
	if len(limit) != len(prefix) {
		return &ldb_util.Range{Start: start, Limit: nil}
	}
	return &ldb_util.Range{Start: start, Limit: limit}
}
