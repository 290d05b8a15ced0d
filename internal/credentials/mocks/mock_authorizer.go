package mocks

import (
	"context"

	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizedClient(ctx context.Context, user *model.User) (storage.Remote, <-chan credentials.Refresh, error) {
	args := m.Called(ctx, user)
	var ch <-chan credentials.Refresh
	if c, ok := args.Get(1).(chan credentials.Refresh); ok {
		ch = c
	}
	if args.Get(0) == nil {
		return nil, ch, args.Error(2)
	}
	return args.Get(0).(storage.Remote), ch, args.Error(2)
}

func (m *MockAuthorizer) PersistRefreshes(ctx context.Context, user *model.User, refreshes <-chan credentials.Refresh) error {
	args := m.Called(ctx, user, refreshes)
	return args.Error(0)
}
