package mocks

import (
	"context"
	"time"

	"drives3/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockObjectRepository struct {
	mock.Mock
}

func (m *MockObjectRepository) Create(ctx context.Context, o *model.Object) (*model.Object, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Object), args.Error(1)
}

func (m *MockObjectRepository) FindByName(ctx context.Context, bucketID, userID, fileName string) (*model.Object, error) {
	args := m.Called(ctx, bucketID, userID, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Object), args.Error(1)
}

func (m *MockObjectRepository) FindByPublicToken(ctx context.Context, bucketName, fileName, token string) (*model.Object, error) {
	args := m.Called(ctx, bucketName, fileName, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Object), args.Error(1)
}

func (m *MockObjectRepository) ListByBucket(ctx context.Context, bucketID string) ([]model.Object, error) {
	args := m.Called(ctx, bucketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Object), args.Error(1)
}

func (m *MockObjectRepository) SetPublicToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockObjectRepository) ClearPublicToken(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockObjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockObjectRepository) DeleteByBucket(ctx context.Context, bucketID string) error {
	args := m.Called(ctx, bucketID)
	return args.Error(0)
}
