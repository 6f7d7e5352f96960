package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"caseapi/internal/model"
	"caseapi/internal/service"
)

type MockCaseService struct {
	mock.Mock
}

var _ service.CaseService = (*MockCaseService)(nil)

func (m *MockCaseService) List(ctx context.Context, req service.ListCasesRequest) (*service.CaseListResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseListResult), args.Error(1)
}

func (m *MockCaseService) Get(ctx context.Context, id int64) (*model.CaseDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) Create(ctx context.Context, req service.CreateCaseRequest) (*model.Case, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseService) AttachDocument(ctx context.Context, req service.AttachDocumentRequest) (*model.Document, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCaseService) ChangeStatus(ctx context.Context, id int64, req service.ChangeStatusRequest) (*service.TransitionResult, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransitionResult), args.Error(1)
}

func (m *MockCaseService) Template(ctx context.Context, id int64) (*service.FileResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileResult), args.Error(1)
}

func (m *MockCaseService) BlankTemplate(ctx context.Context) (*service.FileResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileResult), args.Error(1)
}

func (m *MockCaseService) Summary(ctx context.Context, id int64) (*service.FileResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileResult), args.Error(1)
}

func (m *MockCaseService) Stats(ctx context.Context) (*model.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatusCounts), args.Error(1)
}
