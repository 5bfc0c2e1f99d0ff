// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blobfile

import (
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/bitmark-inc/logger"

	"github.com/meridian-chain/meridiand/fault"
	"github.com/meridian-chain/meridiand/util"
)

// Config - sizing of one blob file
//
// invariant: MaxSize >= GrowthStep >= MaxObjectSize
type Config struct {
	MaxSize       int64 `yaml:"max_size"`
	GrowthStep    int64 `yaml:"growth_step"`
	MaxObjectSize int64 `yaml:"max_object_size"`
}

// DefaultConfig - production sizing
func DefaultConfig() Config {
	return Config{
		MaxSize:       1 << 37, // 128 GB address space reservation
		GrowthStep:    1 << 30, // 1 GB
		MaxObjectSize: 1 << 26, // 64 MB
	}
}

func (cfg Config) check() error {
	if cfg.MaxSize < cfg.GrowthStep || cfg.GrowthStep < cfg.MaxObjectSize || cfg.MaxObjectSize <= 0 {
		return fault.InvalidCount
	}
	return nil
}

// shared state between the single writer and all reader handles
type blobFile struct {
	sync.Mutex // held only while growing the file

	file *os.File
	data []byte // mapping of the full MaxSize, established once
	size int64  // current file length, atomic: written under lock, read lock free
	cfg  Config
	log  *logger.L
}

// Writer - the single appending handle
type Writer struct {
	b *blobFile
}

// Reader - a cheap read only handle; copy freely across goroutines
type Reader struct {
	b *blobFile
}

// Open - map a blob file, creating it when absent
//
// nextFree is the first unwritten offset recovered from the file
// offsets table; the file is pre-grown so the next object always fits
func Open(cfg Config, path string, nextFree uint64) (*Writer, *Reader, error) {
	err := cfg.check()
	if err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	data, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(cfg.MaxSize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	b := &blobFile{
		file: file,
		data: data,
		size: info.Size(),
		cfg:  cfg,
		log:  logger.New("blobfile"),
	}

	err = b.growIfNeeded(int64(nextFree))
	if err != nil {
		b.close()
		return nil, nil, err
	}

	return &Writer{b: b}, &Reader{b: b}, nil
}

// grow the file so that a maximum sized object at end still fits
//
// growth is ftruncate only; the mapping itself is never touched, so
// concurrent readers of already exposed ranges are unaffected
func (b *blobFile) growIfNeeded(end int64) error {
	if atomic.LoadInt64(&b.size)-end >= b.cfg.MaxObjectSize {
		return nil
	}

	b.Lock()
	defer b.Unlock()

	size := atomic.LoadInt64(&b.size)
	newSize := size
	for newSize-end < b.cfg.MaxObjectSize {
		newSize += b.cfg.GrowthStep
	}
	if newSize > b.cfg.MaxSize {
		newSize = b.cfg.MaxSize
	}
	if newSize < end {
		return fault.BlobTooLarge
	}
	if newSize == size {
		return nil
	}

	b.log.Debugf("growing blob file: %d -> %d", size, newSize)
	err := b.file.Truncate(newSize)
	if err != nil {
		return err
	}
	atomic.StoreInt64(&b.size, newSize)
	return nil
}

func (b *blobFile) close() {
	if b.data != nil {
		_ = unix.Munmap(b.data)
		b.data = nil
	}
	if b.file != nil {
		_ = b.file.Close()
		b.file = nil
	}
}

// Insert - append raw bytes at offset, returning the stored length
//
// the caller must supply the offset returned as NextOffset of the
// previous insert; ranges are never rewritten
func (w *Writer) Insert(offset uint64, data []byte) (uint32, error) {
	if int64(len(data)) > w.b.cfg.MaxObjectSize {
		return 0, fault.BlobTooLarge
	}

	// overflow and range guard: a corrupt offset must never reach the
	// slice expression below
	end := offset + uint64(len(data))
	if end < offset || end > uint64(w.b.cfg.MaxSize) {
		return 0, fault.InvalidLocation
	}

	err := w.b.growIfNeeded(int64(end))
	if err != nil {
		return 0, err
	}

	copy(w.b.data[offset:end], data)

	// keep the next maximum sized object writable without a grow in
	// the middle of a transaction commit
	err = w.b.growIfNeeded(int64(end))
	if err != nil {
		return 0, err
	}
	return uint32(len(data)), nil
}

// InsertCounted - append a self describing record: varint length ++ bytes
//
// the returned location covers the whole frame and is what belongs in
// the key/value store
func (w *Writer) InsertCounted(offset uint64, data []byte) (LocationInFile, error) {
	frame := make([]byte, 0, len(data)+util.Varint64MaximumBytes)
	frame = append(frame, util.ToVarint64(uint64(len(data)))...)
	frame = append(frame, data...)

	length, err := w.Insert(offset, frame)
	if err != nil {
		return LocationInFile{}, err
	}
	return LocationInFile{Offset: offset, Length: length}, nil
}

// Flush - synchronously push written pages to the file
//
// called once per storage transaction commit, before the key/value
// batch that exposes the new locations is written
func (w *Writer) Flush() error {
	size := atomic.LoadInt64(&w.b.size)
	if size == 0 {
		return nil
	}
	return unix.Msync(w.b.data[:size], unix.MS_SYNC)
}

// Size - current file length
func (w *Writer) Size() int64 {
	return atomic.LoadInt64(&w.b.size)
}

// Close - unmap and close the backing file
//
// all reader handles become invalid; only call on shutdown
func (w *Writer) Close() {
	w.b.close()
}

// GetRaw - copy out the exact bytes of a previously inserted range
//
// lock free: only the atomic size is consulted, never the writer
func (r *Reader) GetRaw(location LocationInFile) ([]byte, error) {
	end := location.Offset + uint64(location.Length)
	if end < location.Offset || end > uint64(atomic.LoadInt64(&r.b.size)) {
		return nil, fault.InvalidLocation
	}
	data := make([]byte, location.Length)
	copy(data, r.b.data[location.Offset:end])
	return data, nil
}

// GetCounted - fetch a record stored by InsertCounted, stripping the
// length frame and validating it against the location
func (r *Reader) GetCounted(location LocationInFile) ([]byte, error) {
	frame, err := r.GetRaw(location)
	if err != nil {
		return nil, err
	}
	length, n := util.FromVarint64(frame)
	if n == 0 || uint64(len(frame)-n) != length {
		return nil, fault.CannotDecodeRecord
	}
	return frame[n:], nil
}
