// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/meridian-chain/meridiand/util"
)

func TestToVarint64(t *testing.T) {
	items := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{0x1234, []byte{0xb4, 0x24}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range items {
		actual := util.ToVarint64(item.value)
		if !bytes.Equal(item.expected, actual) {
			t.Errorf("%d: ToVarint64(%d) = %x  expected: %x", i, item.value, actual, item.expected)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	items := []struct {
		buffer []byte
		value  uint64
		count  int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x7f}, 127, 1},
		{[]byte{0x80, 0x01}, 128, 2},
		{[]byte{0x80, 0x01, 0xff, 0xff}, 128, 2}, // trailing junk ignored
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0xffffffffffffffff, 9},
		{[]byte{0x80}, 0, 0}, // truncated
		{[]byte{}, 0, 0},     // empty
	}

	for i, item := range items {
		value, count := util.FromVarint64(item.buffer)
		if value != item.value || count != item.count {
			t.Errorf("%d: FromVarint64(%x) = %d, %d  expected: %d, %d",
				i, item.buffer, value, count, item.value, item.count)
		}
	}
}

// round trip a spread of values
func TestVarint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 1 << 20, 1 << 40, 1<<63 + 12345} {
		buffer := util.ToVarint64(v)
		actual, count := util.FromVarint64(buffer)
		if actual != v || count != len(buffer) {
			t.Errorf("round trip %d -> %x -> %d (count: %d)", v, buffer, actual, count)
		}
	}
}
