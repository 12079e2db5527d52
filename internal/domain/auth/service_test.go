package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skilllink/internal/domain/profile"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/pkg/jwt"
	"skilllink/internal/testutil"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db := testutil.DB(t, profile.Models()...)
	svc := NewService(profile.NewRepository(db), jwt.New("test-secret", time.Hour), NewMemoryStore())
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func signUpWorker(t *testing.T, svc *Service, email string) *Session {
	t.Helper()
	s, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email: email, Password: "secret1", FirstName: "Luis", LastName: "Soto", AsWorker: true,
	})
	require.NoError(t, err)
	return s
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	session := signUpWorker(t, svc, " Luis@Example.cl ")
	assert.Equal(t, "luis@example.cl", session.Email)
	assert.Equal(t, profile.RoleWorker, session.Role)
	assert.NotEmpty(t, session.AccessToken)

	again, err := svc.SignInWithPassword(ctx, "LUIS@example.cl", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.PersonID, again.PersonID)
	assert.Equal(t, profile.RoleWorker, again.Role)
	assert.NotEqual(t, session.TokenID, again.TokenID)

	_, err = svc.SignInWithPassword(ctx, "luis@example.cl", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignInWithPassword(ctx, "ghost@example.cl", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &SignUpRequest{Email: "not-an-email", Password: "secret1", FirstName: "A"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "a@example.cl", Password: "123", FirstName: "A"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "a@example.cl", Password: "secret1", FirstName: "A"})
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "A@example.cl", Password: "secret1", FirstName: "B"})
	assert.ErrorIs(t, err, profile.ErrEmailTaken)
	assert.True(t, errs.Is(err, errs.KindConflict))
}

func TestSignOutRevokesSession(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	session := signUpWorker(t, svc, "luis@example.cl")

	got, err := svc.GetSession(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.PersonID, got.PersonID)
	assert.Equal(t, profile.RoleWorker, got.Role)

	require.NoError(t, svc.SignOut(ctx, got))

	_, err = svc.GetSession(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	_, err = svc.GetSession(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, svc.SignOut(ctx, nil), ErrInvalidSession)
}

func TestAuthStateListeners(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var events []Event
	var sessions []*Session
	unsubscribe := svc.OnAuthStateChange(func(e Event, s *Session) {
		events = append(events, e)
		sessions = append(sessions, s)
	})

	session := signUpWorker(t, svc, "luis@example.cl")
	require.NoError(t, svc.SignOut(ctx, session))

	require.Equal(t, []Event{EventSignedIn, EventSignedOut}, events)
	assert.Equal(t, session.PersonID, sessions[0].PersonID)
	assert.Nil(t, sessions[1])

	unsubscribe()
	unsubscribe()
	_, err := svc.SignInWithPassword(ctx, "luis@example.cl", "secret1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestMemoryStoreExpiresRevocations(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memoryStore{revoked: map[string]time.Time{}, now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, store.Revoke(ctx, "old", now.Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "old")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = store.IsRevoked(ctx, "a")
	assert.False(t, revoked)
	assert.Empty(t, store.revoked)
}
