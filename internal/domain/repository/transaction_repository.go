package repository

import (
	"context"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	// Store saves a transaction under the given key, overwriting any prior
	// value. The key is passed explicitly because an update persists the
	// merged record under the addressed id even when the body rewrote the
	// id field.
	Store(ctx context.Context, id string, tx entity.Transaction) error

	// FindByID retrieves a transaction by its unique identifier
	FindByID(ctx context.Context, id string) (entity.Transaction, error)

	// FindAll enumerates every stored transaction
	FindAll(ctx context.Context) ([]entity.Transaction, error)

	// Delete removes a transaction; deleting an absent key is not an error
	Delete(ctx context.Context, id string) error
}
