// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/meridian-chain/meridiand/blobfile"
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/blockrecord"
	"github.com/meridian-chain/meridiand/fault"
)

// Pool - the set of data pools
var Pool struct {
	Headers         *PoolHandle `prefix:"H" database:"chain"`
	Statuses        *PoolHandle `prefix:"S" database:"chain"`
	Transactions    *PoolHandle `prefix:"T" database:"chain"`
	StateDiffs      *PoolHandle `prefix:"D" database:"chain"`
	ContractStorage *PoolHandle `prefix:"R" database:"chain"`
	CompiledClasses *PoolHandle `prefix:"C" database:"chain"`
	OmmerHeaders    *PoolHandle `prefix:"O" database:"chain"`
	Markers         *PoolHandle `prefix:"M" database:"chain"`
	FileOffsets     *PoolHandle `prefix:"F" database:"chain"`
	BlockHashIndex  *PoolHandle `prefix:"2" database:"index"`
	TxHashIndex     *PoolHandle `prefix:"X" database:"index"`
	TestData        *PoolHandle `prefix:"Z" database:"index"`
}

// a blob file pair: single writer, shared reader
type blobWriterHandle struct {
	writer *blobfile.Writer
	reader *blobfile.Reader
}

// the typed table views over the pools
type tableSet struct {
	headers     Table[uint64, *blockrecord.Header]
	statuses    Table[uint64, blockrecord.BlockStatus]
	txs         DupTable[uint64, uint32, *blockrecord.Transaction]
	stateDiffs  Table[uint64, blobfile.LocationInFile]
	storage     DupTable[storageCell, uint64, blockrecord.Word]
	classes     Table[blockdigest.Digest, blobfile.LocationInFile]
	ommers      Table[blockdigest.Digest, *blockrecord.Header]
	blockHashes Table[blockdigest.Digest, uint64]
	txHashes    Table[blockdigest.Digest, TxPosition]
}

// globals for this module
type globalDataType struct {
	sync.RWMutex // to allow locking

	log *logger.L
	cfg Config
	db  *leveldb.DB

	writeLock sync.Mutex // held by the current write transaction

	stateBlob blobWriterHandle
	classBlob blobWriterHandle

	comp   *compressor
	tables tableSet

	poolList   []*PoolHandle
	poolByName map[string]*PoolHandle

	initialised bool
}

// global data
var globalData globalDataType

// Initialise - open the database and blob files, migrating the schema
// to the current version when allowed
func Initialise(cfg Config) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	err := cfg.applyDefaults()
	if err != nil {
		return err
	}

	globalData.log = logger.New("storage")
	globalData.log.Info("starting…")
	globalData.cfg = cfg

	setupPools()

	db, err := openDatabase(filepath.Join(cfg.Directory, "chain.leveldb"), cfg.ReadOnly)
	if err != nil {
		return err
	}
	globalData.db = db

	err = migrate(db, cfg.ReadOnly, globalData.log)
	if err != nil {
		db.Close()
		globalData.db = nil
		return err
	}

	globalData.comp, err = newCompressor(cfg.Chain, globalData.log)
	if err != nil {
		db.Close()
		globalData.db = nil
		return err
	}
	setupTables()

	err = openBlobFiles(cfg)
	if err != nil {
		closeBlobFiles()
		db.Close()
		globalData.db = nil
		return err
	}

	globalData.initialised = true
	return nil
}

// Finalise - close the database and blob files
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeBlobFiles()
	globalData.db.Close()
	globalData.db = nil
	globalData.initialised = false
	return nil
}

// build the pool handles from the struct tags
func setupPools() {
	globalData.poolList = nil
	globalData.poolByName = make(map[string]*PoolHandle)

	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if len(prefixTag) != 1 {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		handle := &PoolHandle{
			prefix:  prefixTag[0],
			name:    fieldInfo.Name,
			rebuild: fieldInfo.Tag.Get("database") == "index",
		}
		poolValue.Field(i).Set(reflect.ValueOf(handle))

		globalData.poolList = append(globalData.poolList, handle)
		globalData.poolByName[fieldInfo.Name] = handle
	}
}

func setupTables() {
	globalData.tables = tableSet{
		headers:     NewTable[uint64, *blockrecord.Header](Pool.Headers, uint64Codec{}, headerValueCodec()),
		statuses:    NewTable[uint64, blockrecord.BlockStatus](Pool.Statuses, uint64Codec{}, statusCodec{}),
		txs:         NewDupTable[uint64, uint32, *blockrecord.Transaction](Pool.Transactions, uint64Codec{}, uint32Codec{}, transactionCodec{}),
		stateDiffs:  NewTable[uint64, blobfile.LocationInFile](Pool.StateDiffs, uint64Codec{}, locationCodec{}),
		storage:     NewDupTable[storageCell, uint64, blockrecord.Word](Pool.ContractStorage, storageCellCodec{}, uint64Codec{}, wordCodec{}),
		classes:     NewTable[blockdigest.Digest, blobfile.LocationInFile](Pool.CompiledClasses, digestCodec{}, locationCodec{}),
		ommers:      NewTable[blockdigest.Digest, *blockrecord.Header](Pool.OmmerHeaders, digestCodec{}, headerValueCodec()),
		blockHashes: NewTable[blockdigest.Digest, uint64](Pool.BlockHashIndex, digestCodec{}, uint64Codec{}),
		txHashes:    NewTable[blockdigest.Digest, TxPosition](Pool.TxHashIndex, digestCodec{}, txPositionCodec{}),
	}
}

func openDatabase(path string, readOnly bool) (*leveldb.DB, error) {
	options := &opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}
	return leveldb.OpenFile(path, options)
}

func openBlobFiles(cfg Config) error {
	for _, item := range []struct {
		kind byte
		file string
		blob *blobWriterHandle
	}{
		{blobStateDiff, "statediff.dat", &globalData.stateBlob},
		{blobClass, "class.dat", &globalData.classBlob},
	} {
		nextFree, err := committedBlobOffset(item.kind)
		if err != nil {
			return err
		}
		writer, reader, err := blobfile.Open(cfg.Blob, filepath.Join(cfg.Directory, item.file), nextFree)
		if err != nil {
			return err
		}
		item.blob.writer = writer
		item.blob.reader = reader
	}
	return nil
}

// the next free offset as recorded by the last committed transaction
func committedBlobOffset(kind byte) (uint64, error) {
	key := Pool.FileOffsets.prefixKey([]byte{kind})
	value, err := globalData.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(value) != 8 {
		return 0, fault.CannotDecodeRecord
	}
	return binary.BigEndian.Uint64(value), nil
}

func closeBlobFiles() {
	if globalData.stateBlob.writer != nil {
		globalData.stateBlob.writer.Close()
		globalData.stateBlob = blobWriterHandle{}
	}
	if globalData.classBlob.writer != nil {
		globalData.classBlob.writer.Close()
		globalData.classBlob = blobWriterHandle{}
	}
}
