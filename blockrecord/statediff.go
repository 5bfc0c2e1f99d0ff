// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/util"
)

// Word - a 32 byte storage cell value
type Word [32]byte

// DeployedContract - a contract instantiated in a block
type DeployedContract struct {
	Address     blockdigest.Digest `json:"address"`
	ClassDigest blockdigest.Digest `json:"classDigest"`
}

// StorageEntry - one storage cell write
type StorageEntry struct {
	Key   blockdigest.Digest `json:"key"`
	Value Word               `json:"value"`
}

// ContractStorageDiff - all storage writes of one contract in a block
type ContractStorageDiff struct {
	Address blockdigest.Digest `json:"address"`
	Entries []StorageEntry     `json:"entries"`
}

// ContractNonce - nonce of a contract after a block
type ContractNonce struct {
	Address blockdigest.Digest `json:"address"`
	Nonce   uint64             `json:"nonce"`
}

// StateDiff - the full state delta of one block
//
// this is the oversized record held in the blob file; only its
// location is kept in the key/value store
type StateDiff struct {
	DeployedContracts []DeployedContract    `json:"deployedContracts"`
	StorageDiffs      []ContractStorageDiff `json:"storageDiffs"`
	Nonces            []ContractNonce       `json:"nonces"`
	DeclaredClasses   []blockdigest.Digest  `json:"declaredClasses"`
}

// Pack - convert the state diff to its binary form
func (diff *StateDiff) Pack() []byte {
	buffer := []byte{}

	buffer = append(buffer, util.ToVarint64(uint64(len(diff.DeployedContracts)))...)
	for _, d := range diff.DeployedContracts {
		buffer = append(buffer, d.Address[:]...)
		buffer = append(buffer, d.ClassDigest[:]...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(diff.StorageDiffs)))...)
	for _, c := range diff.StorageDiffs {
		buffer = append(buffer, c.Address[:]...)
		buffer = append(buffer, util.ToVarint64(uint64(len(c.Entries)))...)
		for _, e := range c.Entries {
			buffer = append(buffer, e.Key[:]...)
			buffer = append(buffer, e.Value[:]...)
		}
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(diff.Nonces)))...)
	for _, nonce := range diff.Nonces {
		buffer = append(buffer, nonce.Address[:]...)
		buffer = append(buffer, util.ToVarint64(nonce.Nonce)...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(diff.DeclaredClasses)))...)
	for _, d := range diff.DeclaredClasses {
		buffer = append(buffer, d[:]...)
	}

	return buffer
}

// UnpackStateDiff - rebuild a state diff from its binary form
func UnpackStateDiff(buffer []byte) (*StateDiff, bool) {
	diff := &StateDiff{}

	count, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < 2*blockdigest.Length {
			return nil, false
		}
		d := DeployedContract{}
		copy(d.Address[:], buffer[:blockdigest.Length])
		copy(d.ClassDigest[:], buffer[blockdigest.Length:2*blockdigest.Length])
		buffer = buffer[2*blockdigest.Length:]
		diff.DeployedContracts = append(diff.DeployedContracts, d)
	}

	count, n = util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < blockdigest.Length {
			return nil, false
		}
		c := ContractStorageDiff{}
		copy(c.Address[:], buffer[:blockdigest.Length])
		buffer = buffer[blockdigest.Length:]

		entries, n := util.FromVarint64(buffer)
		if n == 0 {
			return nil, false
		}
		buffer = buffer[n:]
		for j := uint64(0); j < entries; j += 1 {
			if len(buffer) < blockdigest.Length+32 {
				return nil, false
			}
			e := StorageEntry{}
			copy(e.Key[:], buffer[:blockdigest.Length])
			copy(e.Value[:], buffer[blockdigest.Length:blockdigest.Length+32])
			buffer = buffer[blockdigest.Length+32:]
			c.Entries = append(c.Entries, e)
		}
		diff.StorageDiffs = append(diff.StorageDiffs, c)
	}

	count, n = util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < blockdigest.Length {
			return nil, false
		}
		nonce := ContractNonce{}
		copy(nonce.Address[:], buffer[:blockdigest.Length])
		buffer = buffer[blockdigest.Length:]
		value, n := util.FromVarint64(buffer)
		if n == 0 {
			return nil, false
		}
		nonce.Nonce = value
		buffer = buffer[n:]
		diff.Nonces = append(diff.Nonces, nonce)
	}

	count, n = util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < blockdigest.Length {
			return nil, false
		}
		var d blockdigest.Digest
		copy(d[:], buffer[:blockdigest.Length])
		buffer = buffer[blockdigest.Length:]
		diff.DeclaredClasses = append(diff.DeclaredClasses, d)
	}

	if len(buffer) != 0 {
		return nil, false
	}
	return diff, true
}
