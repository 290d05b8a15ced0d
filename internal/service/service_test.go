package service

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	credMocks "drives3/internal/credentials/mocks"
	"drives3/internal/model"
	repoMocks "drives3/internal/repository/mocks"
	storeMocks "drives3/internal/storage/mocks"
)

type fixture struct {
	buckets *repoMocks.MockBucketRepository
	objects *repoMocks.MockObjectRepository
	users   *repoMocks.MockUserRepository
	auth    *credMocks.MockAuthorizer
	remote  *storeMocks.MockRemote
}

func newFixture() *fixture {
	return &fixture{
		buckets: new(repoMocks.MockBucketRepository),
		objects: new(repoMocks.MockObjectRepository),
		users:   new(repoMocks.MockUserRepository),
		auth:    new(credMocks.MockAuthorizer),
		remote:  new(storeMocks.MockRemote),
	}
}

// expectRemote lets user obtain the fixture's Drive client any number of times.
func (f *fixture) expectRemote(user *model.User) {
	f.auth.On("AuthorizedClient", mock.Anything, user).Return(f.remote, nil, nil)
	f.auth.On("PersistRefreshes", mock.Anything, user, mock.Anything).Return(nil)
}

func (f *fixture) bucketService() *bucketService {
	return NewBucketService(f.buckets, f.objects, f.auth, zerolog.Nop()).(*bucketService)
}

func (f *fixture) objectService() *objectService {
	return NewObjectService(f.buckets, f.objects, f.auth, zerolog.Nop()).(*objectService)
}

func (f *fixture) presignService() *presignService {
	return NewPresignService(f.buckets, f.objects, f.users, f.auth, time.Hour, zerolog.Nop()).(*presignService)
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.buckets.AssertExpectations(t)
	f.objects.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.auth.AssertExpectations(t)
	f.remote.AssertExpectations(t)
}

// trackingReader records whether it was closed.
type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

func content(s string) *trackingReader {
	return &trackingReader{Reader: strings.NewReader(s)}
}

var (
	alice = &model.User{ID: "user-a", Email: "alice@example.com", GoogleAccessToken: "ya29.a"}
	bob   = &model.User{ID: "user-b", Email: "bob@example.com", GoogleAccessToken: "ya29.b"}
)
