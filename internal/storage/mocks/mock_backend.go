package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"caseapi/internal/storage"
)

type MockBackend struct {
	mock.Mock
}

var _ storage.Backend = (*MockBackend)(nil)

func (m *MockBackend) RemoteEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockBackend) CreateCaseFolder(ctx context.Context, caseNumber string) (string, error) {
	args := m.Called(ctx, caseNumber)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) UploadFile(ctx context.Context, caseNumber, rawFilename string, content io.ReadSeeker, size int64, contentType string) (storage.UploadResult, error) {
	args := m.Called(ctx, caseNumber, rawFilename, content, size, contentType)
	if f, ok := args.Get(0).(func(context.Context, string, string, io.ReadSeeker, int64, string) storage.UploadResult); ok {
		return f(ctx, caseNumber, rawFilename, content, size, contentType), args.Error(1)
	}
	return args.Get(0).(storage.UploadResult), args.Error(1)
}

func (m *MockBackend) FileURL(caseNumber, filename string) string {
	return m.Called(caseNumber, filename).String(0)
}
