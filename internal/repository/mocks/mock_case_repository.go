package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

type MockCaseRepository struct {
	mock.Mock
}

var _ repository.CaseRepository = (*MockCaseRepository)(nil)

func (m *MockCaseRepository) Create(ctx context.Context, c *model.Case, initial *model.StatusHistory) (*model.Case, error) {
	args := m.Called(ctx, c, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id int64) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) List(ctx context.Context, f repository.CaseFilter) (*repository.PageResult[model.Case], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Case]), args.Error(1)
}

func (m *MockCaseRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockCaseRepository) ExistsByNumber(ctx context.Context, caseNumber string) (bool, error) {
	args := m.Called(ctx, caseNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaseRepository) UpdateStatus(ctx context.Context, change repository.StatusChange) (*repository.StatusChangeResult, error) {
	args := m.Called(ctx, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StatusChangeResult), args.Error(1)
}

func (m *MockCaseRepository) CountByStatus(ctx context.Context) (map[model.CaseStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.CaseStatus]int), args.Error(1)
}
