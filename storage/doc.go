// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk chain data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. digest       = 32 byte identifier (block, transaction or class)
// 5. word         = 32 byte storage cell value
// 6. location     = blob file locator: offset (8 bytes) ++ length (4 bytes)
//
// Chain:
//
//   H ++ block number            - canonical block headers
//                                  data: version byte ++ packed header
//   S ++ block number            - block status
//                                  data: status byte
//   T ++ block number ++ index   - transactions of a block (dup-sort layout)
//                                  data: packed transaction
//   D ++ block number            - state diff locator
//                                  data: location into statediff.dat
//   R ++ contract ++ key ++ block number
//                                - contract storage writes (shared prefix layout)
//                                  data: word
//   C ++ class digest            - compiled class locator
//                                  data: location into class.dat
//   O ++ block digest            - ommer (non canonical) headers
//                                  data: version byte ++ packed header
//   M ++ marker kind             - next expected block number per entity store
//                                  data: block number
//   F ++ blob kind               - next free offset per blob file
//                                  data: big endian uint64 (8 bytes)
//
// Index (rebuildable from the chain pools):
//
//   2 ++ block digest            - block digest to number
//                                  data: block number
//   X ++ tx digest               - transaction digest to position
//                                  data: block number ++ index in block
//
// Testing:
//   Z ++ key                     - testing data
package storage
