package mocks

import (
	"context"

	"drives3/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBucketRepository struct {
	mock.Mock
}

func (m *MockBucketRepository) Create(ctx context.Context, b *model.Bucket) (*model.Bucket, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bucket), args.Error(1)
}

func (m *MockBucketRepository) FindByName(ctx context.Context, userID, name string) (*model.Bucket, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bucket), args.Error(1)
}

func (m *MockBucketRepository) ListByUser(ctx context.Context, userID string) ([]model.Bucket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bucket), args.Error(1)
}

func (m *MockBucketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
