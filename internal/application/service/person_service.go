package service

import (
	"context"
	"fmt"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
	"github.com/Shubh-Pi/Transaction-management/internal/domain/repository"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/middleware"
	"golang.org/x/sync/errgroup"
)

// PersonService handles business logic for persons, including the
// cascading delete across the transactions collection.
type PersonService struct {
	repo   repository.PersonRepository
	txRepo repository.TransactionRepository
	logger logger.Logger
}

// NewPersonService creates a new person service
func NewPersonService(repo repository.PersonRepository, txRepo repository.TransactionRepository, log logger.Logger) *PersonService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &PersonService{
		repo:   repo,
		txRepo: txRepo,
		logger: log,
	}
}

// ListPersons returns every stored person. Enumeration order is whatever
// the store yields, not insertion order.
func (s *PersonService) ListPersons(ctx context.Context) ([]entity.Person, error) {
	persons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

// CreatePerson validates and stores a person. Storing acts as an upsert:
// an existing record under the same id is overwritten silently.
func (s *PersonService) CreatePerson(ctx context.Context, person entity.Person) (entity.Person, error) {
	if err := person.Normalize(); err != nil {
		return nil, err
	}

	if err := s.repo.Store(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to store person: %w", err)
	}

	s.logger.Info("Person created", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         person.ID(),
	})

	return person, nil
}

// DeletePerson removes a person and every transaction referencing it,
// returning the number of transactions deleted. The per-transaction
// deletes are issued concurrently and joined before the person record is
// removed. The scan and the deletes are not wrapped in a transaction: a
// transaction created for this person while the cascade runs survives as
// an orphan. Deleting a person that does not exist succeeds with a count
// of zero.
func (s *PersonService) DeletePerson(ctx context.Context, id string) (int, error) {
	txs, err := s.txRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to scan transactions: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	deleted := 0

	for _, tx := range txs {
		if !tx.BelongsTo(id) {
			continue
		}
		deleted++

		txID := tx.ID()
		g.Go(func() error {
			return s.txRepo.Delete(gctx, txID)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to delete transactions for person %s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete person: %w", err)
	}

	s.logger.Info("Person deleted", map[string]interface{}{
		"request_id":           middleware.GetRequestID(ctx),
		"id":                   id,
		"deleted_transactions": deleted,
	})

	return deleted, nil
}
