// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and contain no business logic.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no row matches. It wraps sql.ErrNoRows.
	ErrNotFound = fmt.Errorf("record not found: %w", sql.ErrNoRows)
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)
