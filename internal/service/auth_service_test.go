package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taxease-service/internal/config"
	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/events"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return errUniqueConflict
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for email, existing := range r.byEmail {
		if existing.ID == user.ID {
			delete(r.byEmail, email)
			r.byEmail[user.Email] = user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

var errUniqueConflict = fmt.Errorf("unique conflict")

// racingUserRepo simulates a concurrent insert winning between the
// GetByEmail pre-check and Create: the pre-check misses, the insert hits
// the unique index.
type racingUserRepo struct {
	*fakeUserRepo
}

func (r *racingUserRepo) Create(context.Context, *domain.User) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		RegisterTokenTTLMinutes: 60,
		BcryptCost:              4,
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), repo, dispatcher)

	user, token, err := svc.Register(context.Background(), "Alice", "A@X.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "a@x.com", user.Email, "email must be stored normalized")
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserRegistered, dispatcher.published[0].Type)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), nil)

	for _, tc := range []struct {
		name, email, password string
	}{
		{"", "a@x.com", "p"},
		{"Alice", "", "p"},
		{"Alice", "a@x.com", ""},
	} {
		_, _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo, nil)

	_, _, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	// same email, different case: still one user per email
	_, _, err = svc.Register(context.Background(), "Alice Again", "A@X.COM", "secret2")
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_USER", apperrors.ToDomainError(err).Code)
	assert.Len(t, repo.byEmail, 1)
}

func TestRegister_DuplicateRace(t *testing.T) {
	t.Parallel()

	repo := &racingUserRepo{fakeUserRepo: newFakeUserRepo()}
	svc := NewAuthService(testAuthConfig(), repo, nil)

	_, _, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_USER", apperrors.ToDomainError(err).Code)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo, nil)

	_, _, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "A@X.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", user.Email)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), nil)

	_, _, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, token, err := svc.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "USER_NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), "", "p")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, _, err = svc.Login(context.Background(), "a@x.com", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
