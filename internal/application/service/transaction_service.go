package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
	"github.com/Shubh-Pi/Transaction-management/internal/domain/repository"
	"github.com/Shubh-Pi/Transaction-management/internal/errs"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/middleware"
)

// TransactionService handles business logic for transactions
type TransactionService struct {
	repo       repository.TransactionRepository
	personRepo repository.PersonRepository
	logger     logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, personRepo repository.PersonRepository, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		repo:       repo,
		personRepo: personRepo,
		logger:     log,
	}
}

// ListTransactions returns every stored transaction.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// CreateTransaction validates and stores a transaction. The referenced
// person must exist at creation time; nothing is persisted when any check
// fails. Storing acts as an upsert keyed by id.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx entity.Transaction) (entity.Transaction, error) {
	if err := tx.Normalize(); err != nil {
		return nil, err
	}

	if _, err := s.personRepo.FindByID(ctx, tx.PersonID()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFound("Person not found")
		}
		return nil, fmt.Errorf("failed to verify person: %w", err)
	}

	if err := s.repo.Store(ctx, tx.ID(), tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	s.logger.Info("Transaction created", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         tx.ID(),
		"person_id":  tx.PersonID(),
	})

	return tx, nil
}

// UpdateTransaction applies a partial update to a stored transaction and
// returns the merged record. Fields absent from the patch keep their prior
// value, and the personId reference is not re-validated here. The merged
// record is persisted under the addressed id: a patch that rewrites the id
// field changes the stored value but never the store key, so exactly one
// record remains.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, patch entity.Patch) (entity.Transaction, error) {
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFound("Transaction not found")
		}
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	if err := patch.Normalize(); err != nil {
		return nil, err
	}

	merged := patch.Apply(stored)
	if err := s.repo.Store(ctx, id, merged); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	s.logger.Info("Transaction updated", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         id,
	})

	return merged, nil
}

// DeleteTransaction removes a single transaction. Unlike person deletion
// this is not idempotent: an absent id is reported as not found.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NewNotFound("Transaction not found")
		}
		return fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"id":         id,
	})

	return nil
}
