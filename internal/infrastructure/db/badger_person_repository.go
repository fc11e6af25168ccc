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

const personPrefix = "person:"

// BadgerPersonRepository implements the person repository interface using BadgerDB
type BadgerPersonRepository struct {
	db *badger.DB
}

// NewBadgerPersonRepository creates a new BadgerDB person repository
func NewBadgerPersonRepository(db *badger.DB) *BadgerPersonRepository {
	return &BadgerPersonRepository{db: db}
}

// Store saves a person under its id, overwriting any prior value
func (r *BadgerPersonRepository) Store(ctx context.Context, person entity.Person) error {
	data, err := json.Marshal(person)
	if err != nil {
		return fmt.Errorf("failed to marshal person: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(personPrefix+person.ID()), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store person: %w", err)
	}

	return nil
}

// FindByID retrieves a person by its unique identifier
func (r *BadgerPersonRepository) FindByID(ctx context.Context, id string) (entity.Person, error) {
	var person entity.Person

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(personPrefix + id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &person)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve person: %w", err)
	}

	return person, nil
}

// FindAll enumerates every stored person. Values that can no longer be
// decoded are skipped rather than failing the whole listing.
func (r *BadgerPersonRepository) FindAll(ctx context.Context) ([]entity.Person, error) {
	persons := []entity.Person{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(personPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var person entity.Person
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &person)
			})
			if err != nil {
				continue
			}
			persons = append(persons, person)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	return persons, nil
}

// Delete removes a person record. Deleting an id that does not exist is a
// no-op, which keeps person deletion idempotent.
func (r *BadgerPersonRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(personPrefix + id))
	})

	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	return nil
}
