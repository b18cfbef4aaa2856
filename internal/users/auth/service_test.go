// Copyright (c) 2026 Inkwell. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/sec"
	"github.com/inkwell-app/inkwell/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID       map[string]*auth.User
	byEmail    map[string]*auth.User
	byUsername map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:       map[string]*auth.User{},
		byEmail:    map[string]*auth.User{},
		byUsername: map[string]*auth.User{},
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session // keyed by token hash
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	if s, ok := f.sessions[tokenHash]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for hash, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, hash)
		}
	}
	return nil
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentTokenHash string) error {
	for hash, s := range f.sessions {
		if s.UserID == userID && hash != currentTokenHash {
			delete(f.sessions, hash)
		}
	}
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: map[string]string{}}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository, *fakeResetTokenRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	resets := newFakeResetTokenRepository()
	service := auth.NewService(users, sessions, resets, fakeTokenProvider{})
	return service, users, sessions, resets
}

// # Registration

/*
TestService_Register_Success checks the happy path of account creation.
*/
func TestService_Register_Success(t *testing.T) {
	service, users, _, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:    "margot",
		Email:       "margot@example.com",
		Password:    "correct horse battery",
		DisplayName: "Margot",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "margot", user.Username)

	// The stored hash must verify against the original password.
	stored := users.byUsername["margot"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", stored.PasswordHash))
}

/*
TestService_Register_Conflicts verifies duplicate identity rejection.
*/
func TestService_Register_Conflicts(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "margot@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "other", Email: "margot@example.com", Password: "password123",
	})
	assert.True(t, apperr.IsCode(err, "CONFLICT"))

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "new@example.com", Password: "password123",
	})
	assert.True(t, apperr.IsCode(err, "CONFLICT"))
}

// # Login & Sessions

/*
TestService_Login covers credential verification by username and email.
*/
func TestService_Login(t *testing.T) {
	service, _, sessions, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "margot@example.com", Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  bool
	}{
		{"by_username", "margot", "password123", false},
		{"by_email", "margot@example.com", "password123", false},
		{"wrong_password", "margot", "nope", true},
		{"unknown_user", "ghost", "password123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), auth.LoginInput{
				Login: tt.login, Password: tt.password,
			})

			if tt.wantErr {
				assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)

			// The stored session is addressed by the token's hash, never the raw token.
			_, rawStored := sessions.sessions[session.RefreshToken]
			assert.False(t, rawStored)
			_, hashStored := sessions.sessions[sec.HashToken(session.RefreshToken)]
			assert.True(t, hashStored)
		})
	}
}

/*
TestService_RefreshSession_Rotation verifies that a used refresh token is
revoked and can never be replayed.
*/
func TestService_RefreshSession_Rotation(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "margot@example.com", Password: "password123",
	})
	require.NoError(t, err)

	first, err := service.Login(context.Background(), auth.LoginInput{
		Login: "margot", Password: "password123",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the original token must fail.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestService_Logout_Idempotent checks that logging out twice is harmless.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "margot@example.com", Password: "password123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "margot", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "ua", "ip")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

// # Password Recovery

/*
TestService_ResetPassword_Flow walks the full forgot-password cycle and
verifies the session nuke afterwards.
*/
func TestService_ResetPassword_Flow(t *testing.T) {
	service, users, sessions, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "margot", Email: "margot@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Login: "margot", Password: "password123",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(context.Background(), "margot@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "brand-new-pass"))

	// New password works, old one does not.
	assert.True(t, sec.CheckPasswordHash("brand-new-pass", users.byID[user.ID].PasswordHash))
	assert.False(t, sec.CheckPasswordHash("password123", users.byID[user.ID].PasswordHash))

	// Every session was revoked and the token is single-use.
	assert.Empty(t, sessions.sessions)
	err = service.ResetPassword(context.Background(), token, "another-pass")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestService_RequestPasswordReset_UnknownEmail must not leak account existence.
*/
func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	service, _, _, resets := newTestService()

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, resets.tokens)
}
