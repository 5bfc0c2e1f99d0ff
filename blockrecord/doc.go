// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// record types persisted by the storage engine
//
// each record packs to a compact binary form:
// 1. digest        = 32 raw bytes
// 2. word          = 32 raw bytes
// 3. number        = Varint64
// 4. byte string   = Varint64 length ++ raw bytes
// 5. list          = Varint64 count ++ concatenated items
//
// unpacking is total: malformed input yields ok == false, never a panic
package blockrecord
