// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

// BlockStatus - lifecycle state of a stored block
type BlockStatus byte

// block status values - the byte value is the stored form
const (
	StatusPending   BlockStatus = 0x00
	StatusAccepted  BlockStatus = 0x01
	StatusFinalised BlockStatus = 0x02
	StatusRejected  BlockStatus = 0x03
)

// String - printable status name
func (status BlockStatus) String() string {
	switch status {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusFinalised:
		return "finalised"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ValidBlockStatus - report whether a stored byte is a defined status
func ValidBlockStatus(b byte) bool {
	return b <= byte(StatusRejected)
}
