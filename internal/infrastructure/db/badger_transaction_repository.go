package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
	"github.com/Shubh-Pi/Transaction-management/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

const txPrefix = "tx:"

// BadgerTransactionRepository implements the transaction repository interface using BadgerDB
type BadgerTransactionRepository struct {
	db *badger.DB
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction repository
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{db: db}
}

// Store saves a transaction under the given key, overwriting any prior value
func (r *BadgerTransactionRepository) Store(ctx context.Context, id string, tx entity.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(txPrefix+id), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (entity.Transaction, error) {
	var tx entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(txPrefix + id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return tx, nil
}

// FindAll enumerates every stored transaction, skipping values that can no
// longer be decoded.
func (r *BadgerTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	txs := []entity.Transaction{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(txPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var tx entity.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				continue
			}
			txs = append(txs, tx)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// Delete removes a transaction record. Deleting an absent id is a no-op.
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(txPrefix + id))
	})

	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
