// Package repository declares persistence contracts for cases, documents and status history.
// Implementations live in subpackages (postgres). Lookups of missing rows return sql.ErrNoRows.
package repository

import "errors"

var (
	// ErrDuplicateCaseNumber is returned when an insert hits the case-number uniqueness constraint.
	ErrDuplicateCaseNumber = errors.New("case number already exists")
	// ErrDuplicateMainDocument is returned when a case would get a second main document.
	ErrDuplicateMainDocument = errors.New("main document already exists")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
