package repository

import (
	"context"
	"errors"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
)

// ErrNotFound is returned when a record does not exist at the given key.
var ErrNotFound = errors.New("record not found")

// PersonRepository defines the interface for person storage
type PersonRepository interface {
	// Store saves a person under its id, overwriting any prior value
	Store(ctx context.Context, person entity.Person) error

	// FindByID retrieves a person by its unique identifier
	FindByID(ctx context.Context, id string) (entity.Person, error)

	// FindAll enumerates every stored person
	FindAll(ctx context.Context) ([]entity.Person, error)

	// Delete removes a person; deleting an absent key is not an error
	Delete(ctx context.Context, id string) error
}
