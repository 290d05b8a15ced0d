package mocks

import (
	"context"
	"io"

	"drives3/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) CreateFolder(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockRemote) CreateFile(ctx context.Context, folderID, name string, r io.Reader, opt storage.FileOptions) (storage.FileInfo, error) {
	args := m.Called(ctx, folderID, name, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, string, io.Reader, storage.FileOptions) storage.FileInfo); ok {
		return f(ctx, folderID, name, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockRemote) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockRemote) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
