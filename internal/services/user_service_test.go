package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campsite-service/internal/models"
	"campsite-service/internal/repository"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{docs: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.docs {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicateUser
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	f.docs[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.docs {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testLogger())
	ctx := context.Background()

	u, err := svc.Register(ctx, "marge", "marge@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", u.PasswordHash, "password is stored hashed")

	got, err := svc.Authenticate(ctx, "marge", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testLogger())
	ctx := context.Background()
	_, err := svc.Register(ctx, "marge", "marge@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "marge", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and bad password are indistinguishable")
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "marge", "marge@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "marge", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)
}
