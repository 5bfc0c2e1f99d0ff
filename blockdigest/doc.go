// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// fixed size identifier for blocks, transactions and compiled classes
//
// the digest is an opaque 32 byte value as far as the storage engine is
// concerned; ordering of digest keys is plain byte ordering
package blockdigest
