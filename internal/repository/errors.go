// Package repository implements data access over *sql.DB.  Sentinel errors
// defined here let handlers distinguish failure scenarios without inspecting
// driver-specific error strings themselves: ErrEntryNotFound maps to HTTP
// 404 and ErrEmailExists to HTTP 409.
package repository

import "errors"

// ErrEntryNotFound is returned when an entry id has no matching record.
var ErrEntryNotFound = errors.New("entry not found")

// ErrEmailExists is returned when registration hits the unique email index.
var ErrEmailExists = errors.New("email already exists")
