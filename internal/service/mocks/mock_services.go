package mocks

import (
	"context"

	"drives3/internal/model"
	"drives3/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockBucketService struct {
	mock.Mock
}

func (m *MockBucketService) CreateBucket(ctx context.Context, user *model.User, name string) (*model.Bucket, error) {
	args := m.Called(ctx, user, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bucket), args.Error(1)
}

func (m *MockBucketService) DeleteBucket(ctx context.Context, user *model.User, name string) (*service.DeletionReport, error) {
	args := m.Called(ctx, user, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeletionReport), args.Error(1)
}

func (m *MockBucketService) ListBuckets(ctx context.Context, user *model.User) ([]model.Bucket, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bucket), args.Error(1)
}

type MockObjectService struct {
	mock.Mock
}

func (m *MockObjectService) PutObject(ctx context.Context, user *model.User, bucketName, requestedName string, up service.Upload) (*service.PutResult, error) {
	args := m.Called(ctx, user, bucketName, requestedName, up)
	if up.Content != nil {
		up.Content.Close()
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PutResult), args.Error(1)
}

func (m *MockObjectService) GetObject(ctx context.Context, user *model.User, bucketName, storedName string) (*service.Download, error) {
	args := m.Called(ctx, user, bucketName, storedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}

func (m *MockObjectService) DeleteObject(ctx context.Context, user *model.User, bucketName, storedName string) error {
	args := m.Called(ctx, user, bucketName, storedName)
	return args.Error(0)
}

func (m *MockObjectService) ListObjects(ctx context.Context, user *model.User, bucketName string) (*service.ObjectListing, error) {
	args := m.Called(ctx, user, bucketName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ObjectListing), args.Error(1)
}

type MockPresignService struct {
	mock.Mock
}

func (m *MockPresignService) IssueToken(ctx context.Context, user *model.User, bucketName, storedName, baseURL string) (*service.PresignedURL, error) {
	args := m.Called(ctx, user, bucketName, storedName, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PresignedURL), args.Error(1)
}

func (m *MockPresignService) RevokeToken(ctx context.Context, user *model.User, bucketName, storedName string) error {
	args := m.Called(ctx, user, bucketName, storedName)
	return args.Error(0)
}

func (m *MockPresignService) ServePublic(ctx context.Context, bucketName, storedName, token string, wantsDownload bool) (*service.Download, error) {
	args := m.Called(ctx, bucketName, storedName, token, wantsDownload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) Callback(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Resolve(ctx context.Context, bearer string) (*model.User, error) {
	args := m.Called(ctx, bearer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
