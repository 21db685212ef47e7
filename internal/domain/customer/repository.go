package customer

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("customer not found")
)

// Filter narrows a list query. Every set field is an additional AND
// predicate; zero-value fields impose no constraint.
type Filter struct {
	// Name matches case-insensitively as a substring of either the last
	// or the first name.
	Name string
	// City matches case-insensitively as a substring of the city.
	City string
	// State matches exactly, after trimming and uppercasing.
	State string
}

func (f Filter) IsZero() bool {
	return f.Name == "" && f.City == "" && f.State == ""
}

// NormalizedState returns the state predicate the way it is compared
// against stored records.
func (f Filter) NormalizedState() string {
	return strings.ToUpper(strings.TrimSpace(f.State))
}

// CustomerRepository is the persistence boundary for pipeline records.
// Records are insert-only: there is no update path for business fields.
type CustomerRepository interface {
	// Save inserts a validated record and assigns ID and CreatedAt on it.
	Save(ctx context.Context, cust *Customer) error

	// FindAll returns records matching the filter, newest first
	// (created_at descending, id descending as tie-break).
	FindAll(ctx context.Context, filter Filter) ([]*Customer, error)

	// Delete removes the record with the given id. Deleting an unknown
	// id is a successful no-op.
	Delete(ctx context.Context, customerID int64) error
}
