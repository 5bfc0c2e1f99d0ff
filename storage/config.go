// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/meridian-chain/meridiand/blobfile"
	"github.com/meridian-chain/meridiand/fault"
)

// Config - static settings for one storage instance
type Config struct {
	// Directory holds the LevelDB files and the blob files; it must
	// exist and be exclusively owned by this process
	Directory string `yaml:"directory"`

	// Chain selects the pre-trained compression dictionary; an
	// unknown chain logs a warning and stores without a dictionary
	Chain string `yaml:"chain"`

	// ReadOnly opens without a writer; the database must already
	// exist and carry the current schema version
	ReadOnly bool `yaml:"read_only"`

	// WriteLockWait selects the write transaction acquisition
	// policy: wait for the current writer (true) or fail
	// immediately with WriteTransactionBusy (false)
	WriteLockWait bool `yaml:"write_lock_wait"`

	// Blob sizes both blob files
	Blob blobfile.Config `yaml:"blob"`
}

// fill zero fields with production defaults
func (cfg *Config) applyDefaults() error {
	if cfg.Directory == "" {
		return fault.MissingBlobDirectory
	}
	zero := blobfile.Config{}
	if cfg.Blob == zero {
		cfg.Blob = blobfile.DefaultConfig()
	}
	return nil
}
