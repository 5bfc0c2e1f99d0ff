// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/meridian-chain/meridiand/fault"
)

// test that the error classifiers only accept their own class
func TestErrorClasses(t *testing.T) {
	if !fault.IsErrExists(fault.KeyExists) {
		t.Errorf("KeyExists is not an exists error")
	}
	if !fault.IsErrInvalid(fault.InvalidCursor) {
		t.Errorf("InvalidCursor is not an invalid error")
	}
	if !fault.IsErrNotFound(fault.PoolNotFound) {
		t.Errorf("PoolNotFound is not a not-found error")
	}
	if !fault.IsErrProcess(fault.NotInitialised) {
		t.Errorf("NotInitialised is not a process error")
	}
	if fault.IsErrExists(fault.InvalidCursor) {
		t.Errorf("InvalidCursor misclassified as exists")
	}
}

// errors must render their underlying message
func TestErrorText(t *testing.T) {
	if fault.WriteTransactionBusy.Error() != "write transaction is held elsewhere" {
		t.Errorf("unexpected error text: %q", fault.WriteTransactionBusy.Error())
	}
}
