package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/pkg/auth"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

type fakeTokenRepo struct {
	revoked map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]bool)}
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string, _ time.Duration) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeTokenRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return apperrors.Unauthenticated("", nil)
	}
	return nil
}

type authFixture struct {
	svc    *Service
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	user   *model.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	user := users.add(&model.User{
		Email:          "doc@example.com",
		HashedPassword: "hashed:correct-password",
		Role:           model.RoleDoctor,
		IsActive:       true,
	})

	tokens := newFakeTokenRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	svc := NewService(users, tokens, jwtSvc, plainHasher{})

	return &authFixture{svc: svc, users: users, tokens: tokens, user: user}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), "doc@example.com", "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "doc@example.com", "wrong-password")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))

	_, err = f.svc.Login(context.Background(), "nobody@example.com", "correct-password")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	f.user.IsActive = false

	_, err := f.svc.Login(context.Background(), "doc@example.com", "correct-password")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, "doc@example.com", "correct-password")
	require.NoError(t, err)

	got, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, got.ID)

	_, err = f.svc.Authenticate(ctx, "not-a-token")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, "doc@example.com", "correct-password")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken))

	_, err = f.svc.Authenticate(ctx, resp.AccessToken)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestAuthenticateRejectsTokenFromOtherSecret(t *testing.T) {
	f := newAuthFixture(t)

	other := auth.NewJWTService("different-secret", time.Hour)
	token, _, err := other.GenerateAccessToken(f.user)
	require.NoError(t, err)

	_, err = f.svc.Authenticate(context.Background(), token)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}
