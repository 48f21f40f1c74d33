// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across the
// per-entity repositories so handlers can map failures onto status codes
// without inspecting driver internals.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert or update would violate the
// unique constraint on users.email. Handlers should translate this into
// an HTTP 409 response.
var ErrEmailExists = errors.New("email already registered")

// ErrMissingParent is returned when a write references a parent row that
// does not exist (owner of a farm, farm of a crop, and so on).
var ErrMissingParent = errors.New("referenced record does not exist")

// ErrRowInUse is returned when a delete is blocked because dependent rows
// still reference the target, e.g. a product that appears in order items.
var ErrRowInUse = errors.New("record is referenced by dependent rows")

// MySQL reports constraint violations by error number inside the message:
// 1062 duplicate key, 1452 foreign key insert/update failure, 1451
// foreign key delete restriction.
func isDuplicate(err error) bool     { return err != nil && strings.Contains(err.Error(), "1062") }
func isMissingParent(err error) bool { return err != nil && strings.Contains(err.Error(), "1452") }
func isRestricted(err error) bool    { return err != nil && strings.Contains(err.Error(), "1451") }
