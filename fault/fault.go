// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised     = ProcessError("already initialised")
	BlobTooLarge           = InvalidError("blob exceeds maximum object size")
	CannotDecodeRecord     = InvalidError("cannot decode record")
	DatabaseIsReadOnly     = InvalidError("database is read only")
	InvalidBlockNumber     = InvalidError("invalid block number")
	InvalidCount           = InvalidError("invalid count")
	InvalidCursor          = InvalidError("invalid cursor")
	InvalidKeyLength       = InvalidError("key length is invalid")
	InvalidLocation        = InvalidError("location is outside the written file range")
	KeyExists              = ExistsError("key already exists")
	MissingBlobDirectory   = InvalidError("blob directory is missing")
	NotInitialised         = ProcessError("not initialised")
	OmmerExists            = ExistsError("ommer header already exists")
	PoolNotFound           = NotFoundError("pool is not found")
	TransactionIsClosed    = ProcessError("transaction is already committed or aborted")
	UnsupportedCompression = InvalidError("unsupported compression tag")
	WriteTransactionBusy   = ProcessError("write transaction is held elsewhere")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
