// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// migrate - bring the schema to the current version, one step per
// loop iteration
//
// each step runs as a single batch, so a crash mid-migration leaves
// either the old or the new version on disk, never a half step; a
// read only open never migrates and instead fails on any mismatch
func migrate(db *leveldb.DB, readOnly bool, log *logger.L) error {
	for {
		version, present, err := getVersion(db)
		if err != nil {
			return err
		}

		if !present {
			empty, err := isEmpty(db)
			if err != nil {
				return err
			}
			if empty {
				if readOnly {
					return VersionMismatchError{Stored: 0, Current: currentDBVersion}
				}
				log.Infof("new database: stamping version: %d", currentDBVersion)
				batch := new(leveldb.Batch)
				putVersion(batch, currentDBVersion)
				return db.Write(batch, nil)
			}
			// data without a version row predates versioning
			version = 0
		}

		if version == currentDBVersion {
			return nil
		}
		if version > currentDBVersion {
			return VersionMismatchError{Stored: version, Current: currentDBVersion}
		}
		if readOnly {
			return VersionMismatchError{Stored: version, Current: currentDBVersion}
		}

		log.Warnf("migrating database: %d -> %d", version, version+1)
		switch version {
		case 0:
			err = migrateHeaderRows(db)
		case 1:
			err = rebuildIndexPools(db)
		default:
			err = VersionMismatchError{Stored: version, Current: currentDBVersion}
		}
		if err != nil {
			return err
		}
	}
}

func isEmpty(db *leveldb.DB) (bool, error) {
	iter := db.NewIterator(nil, nil)
	defer iter.Release()
	return !iter.Next(), iter.Error()
}

// version 0 -> 1: eagerly re-encode every header row to the current
// layout; rows already readable through the lazy decode path are
// rewritten so later versions can drop the old decoder
func migrateHeaderRows(db *leveldb.DB) error {
	batch := new(leveldb.Batch)

	for _, prefix := range []byte{Pool.Headers.prefix, Pool.OmmerHeaders.prefix} {
		iter := db.NewIterator(prefixRange([]byte{prefix}), nil)
		for iter.Next() {
			value := iter.Value()
			if len(value) == 0 {
				iter.Release()
				return fault.CannotDecodeRecord
			}
			if value[0] != 0 {
				continue
			}
			header, ok := blockrecord.UnpackHeaderV0(value[1:])
			if !ok {
				iter.Release()
				return fault.CannotDecodeRecord
			}
			rewritten := append([]byte{headerVersion}, header.Pack()...)
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			batch.Put(key, rewritten)
		}
		err := iter.Error()
		iter.Release()
		if err != nil {
			return err
		}
	}

	putVersion(batch, 1)
	return db.Write(batch, nil)
}

// version 1 -> 2: drop every index pool and rebuild it from the chain
// pools; the index section holds only derived data, so a rebuild is
// always safe
func rebuildIndexPools(db *leveldb.DB) error {
	batch := new(leveldb.Batch)

	for _, pool := range globalData.poolList {
		if !pool.rebuild {
			continue
		}
		iter := db.NewIterator(pool.limits(), nil)
		for iter.Next() {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			batch.Delete(key)
		}
		err := iter.Error()
		iter.Release()
		if err != nil {
			return err
		}
	}

	// block digest -> number
	iter := db.NewIterator(Pool.Headers.limits(), nil)
	for iter.Next() {
		value := iter.Value()
		if len(value) == 0 {
			iter.Release()
			return fault.CannotDecodeRecord
		}
		var header *blockrecord.Header
		var ok bool
		switch value[0] {
		case 0:
			header, ok = blockrecord.UnpackHeaderV0(value[1:])
		case headerVersion:
			header, ok = blockrecord.UnpackHeader(value[1:])
		}
		if !ok {
			iter.Release()
			return fault.CannotDecodeRecord
		}
		number := make([]byte, 8)
		copy(number, iter.Key()[1:])
		batch.Put(Pool.BlockHashIndex.prefixKey(header.Digest[:]), number)
	}
	err := iter.Error()
	iter.Release()
	if err != nil {
		return err
	}

	// tx digest -> block number ++ index
	iter = db.NewIterator(Pool.Transactions.limits(), nil)
	for iter.Next() {
		tx, ok := blockrecord.UnpackTransaction(iter.Value())
		if !ok {
			iter.Release()
			return fault.CannotDecodeRecord
		}
		position := make([]byte, 12)
		copy(position, iter.Key()[1:]) // number(8) ++ index(4)
		batch.Put(Pool.TxHashIndex.prefixKey(tx.Digest[:]), position)
	}
	err = iter.Error()
	iter.Release()
	if err != nil {
		return err
	}

	putVersion(batch, 2)
	return db.Write(batch, nil)
}
