package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

type MockDocumentRepository struct {
	mock.Mock
}

var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if f, ok := args.Get(0).(func(context.Context, *model.Document) *model.Document); ok {
		return f(ctx, doc), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) HasMain(ctx context.Context, caseID int64) (bool, error) {
	args := m.Called(ctx, caseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) ListByCase(ctx context.Context, caseID int64) ([]model.Document, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

type MockStatusHistoryRepository struct {
	mock.Mock
}

var _ repository.StatusHistoryRepository = (*MockStatusHistoryRepository)(nil)

func (m *MockStatusHistoryRepository) ListByCase(ctx context.Context, caseID int64) ([]model.StatusHistory, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}
