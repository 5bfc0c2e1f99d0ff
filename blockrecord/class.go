// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/meridian-chain/meridiand/blockdigest"
	"github.com/meridian-chain/meridiand/util"
)

// EntryPoint - an externally callable offset of a compiled class
type EntryPoint struct {
	Selector Word   `json:"selector"`
	Offset   uint64 `json:"offset"`
}

// CompiledClass - compiled contract bytecode plus its entry points
//
// compiled classes are the largest records in the store and live in
// the blob file
type CompiledClass struct {
	ClassDigest blockdigest.Digest `json:"classDigest"`
	Program     []byte             `json:"program"`
	EntryPoints []EntryPoint       `json:"entryPoints"`
}

// Pack - convert the compiled class to its binary form
func (class *CompiledClass) Pack() []byte {
	buffer := make([]byte, 0, blockdigest.Length+len(class.Program)+64)
	buffer = append(buffer, class.ClassDigest[:]...)
	buffer = append(buffer, util.ToVarint64(uint64(len(class.Program)))...)
	buffer = append(buffer, class.Program...)
	buffer = append(buffer, util.ToVarint64(uint64(len(class.EntryPoints)))...)
	for _, e := range class.EntryPoints {
		buffer = append(buffer, e.Selector[:]...)
		buffer = append(buffer, util.ToVarint64(e.Offset)...)
	}
	return buffer
}

// UnpackCompiledClass - rebuild a compiled class from its binary form
func UnpackCompiledClass(buffer []byte) (*CompiledClass, bool) {
	if len(buffer) < blockdigest.Length {
		return nil, false
	}
	class := &CompiledClass{}
	copy(class.ClassDigest[:], buffer[:blockdigest.Length])
	buffer = buffer[blockdigest.Length:]

	length, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	if uint64(len(buffer)) < length {
		return nil, false
	}
	class.Program = make([]byte, length)
	copy(class.Program, buffer[:length])
	buffer = buffer[length:]

	count, n := util.FromVarint64(buffer)
	if n == 0 {
		return nil, false
	}
	buffer = buffer[n:]
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < 32 {
			return nil, false
		}
		e := EntryPoint{}
		copy(e.Selector[:], buffer[:32])
		buffer = buffer[32:]
		offset, n := util.FromVarint64(buffer)
		if n == 0 {
			return nil, false
		}
		e.Offset = offset
		buffer = buffer[n:]
		class.EntryPoints = append(class.EntryPoints, e)
	}

	if len(buffer) != 0 {
		return nil, false
	}
	return class, true
}
