// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// append only memory mapped file for oversized records
//
// the key/value store keeps only a LocationInFile for records such as
// state diffs and compiled classes; the bytes themselves live in a
// flat file that is mapped once, at its maximum size, when opened
//
// concurrency rules:
// 1. a single writer appends; it is the only mutator of the file length
// 2. any number of reader handles may fetch concurrently without locks,
//    because reads only touch ranges at or below the exposed size and
//    written ranges are never modified again
// 3. the mapping is never moved or shrunk, so slices handed to readers
//    stay valid for the life of the handle; growth is plain ftruncate
//    underneath the existing mapping
package blobfile
