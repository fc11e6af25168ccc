// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockPersonRepository mocks the PersonRepository interface
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Store(ctx context.Context, person entity.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id string) (entity.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Person), args.Error(1)
}

func (m *MockPersonRepository) FindAll(ctx context.Context) ([]entity.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Person), args.Error(1)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Store(ctx context.Context, id string, tx entity.Transaction) error {
	args := m.Called(ctx, id, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
