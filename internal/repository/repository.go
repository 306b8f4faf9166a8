// Package repository wraps the users collection behind an interface so
// the auth service never touches the database client directly.
package repository

import (
	"context"
	"errors"

	"github.com/kaziabulhasib/EasyPay-server/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when an insert violates the email or
	// mobile uniqueness index.
	ErrDuplicate = errors.New("duplicate user")
)

// UserRepository is the storage surface the auth service needs.
type UserRepository interface {
	// FindByIdentifier looks up the single record whose email or mobile
	// equals identifier. Returns ErrNotFound when there is no match.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)

	// FindByEmailOrMobile returns any record matching either value,
	// skipping empty arguments. Used for the duplicate pre-check at
	// registration. Returns ErrNotFound when there is no match.
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)

	// FindByID looks up a record by its hex object id.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Insert persists a new record and returns it with the assigned id.
	Insert(ctx context.Context, user *models.User) (*models.User, error)

	// ListAll returns every record in the collection, in whatever order
	// the store yields them.
	ListAll(ctx context.Context) ([]models.User, error)
}
