// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/bitmark-inc/logger"
	"github.com/klauspost/compress/zstd"

	"github.com/meridian-chain/meridiand/fault"
)

// leading tag byte of every blob payload
const (
	compressionNone = 0x00
	compressionZstd = 0x01
)

// records below this size are stored uncompressed
const compressionThreshold = 256

// per chain pre-trained raw dictionaries
//
// the id is embedded in every compressed frame, so a store written
// with a dictionary can only be read with the same dictionary loaded
type chainDictionary struct {
	id      uint32
	content []byte
}

var chainDictionaries = map[string]chainDictionary{
	"meridian-main": {
		id:      0x4d444d31, // "MDM1"
		content: buildDictionary(),
	},
	"meridian-test": {
		id:      0x4d445431, // "MDT1"
		content: buildDictionary(),
	},
}

// common substrings of packed state diffs and compiled classes: long
// zero runs for unset digest bytes and small count prefixes
func buildDictionary() []byte {
	d := bytes.Repeat([]byte{0x00}, 1024)
	for i := byte(0); i < 32; i += 1 {
		d = append(d, i, 0x00, 0x00, 0x00)
	}
	return d
}

type compressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// create the shared compressor for one chain
//
// an unknown chain is not an error: the store still works, only
// without dictionary assistance
func newCompressor(chain string, log *logger.L) (*compressor, error) {
	encOptions := []zstd.EOption{
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	}
	decOptions := []zstd.DOption{}

	dictionary, ok := chainDictionaries[chain]
	if ok {
		encOptions = append(encOptions, zstd.WithEncoderDictRaw(dictionary.id, dictionary.content))
		decOptions = append(decOptions, zstd.WithDecoderDictRaw(dictionary.id, dictionary.content))
	} else {
		log.Warnf("no compression dictionary for chain: %q", chain)
	}

	enc, err := zstd.NewWriter(nil, encOptions...)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, decOptions...)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &compressor{enc: enc, dec: dec}, nil
}

// compress - tag and possibly compress a packed record
//
// small records keep their raw bytes so the tag byte is the only
// overhead
func (c *compressor) compress(data []byte) []byte {
	if len(data) < compressionThreshold {
		return append([]byte{compressionNone}, data...)
	}
	return c.enc.EncodeAll(data, []byte{compressionZstd})
}

// decompress - reverse of compress
func (c *compressor) decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fault.CannotDecodeRecord
	}
	switch data[0] {
	case compressionNone:
		return data[1:], nil
	case compressionZstd:
		return c.dec.DecodeAll(data[1:], nil)
	default:
		return nil, fault.UnsupportedCompression
	}
}
