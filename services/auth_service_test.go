package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := NewAdminAuth(string(hash), "jwt-secret", time.Hour, logger)

	_, err = auth.Login(context.Background(), "wrong")
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)

	issued, err := auth.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	parsed, err := jwt.Parse(issued.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, claims["role"])
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
}

func TestAdminAuth_LoginDisabledWithoutHash(t *testing.T) {
	auth := NewAdminAuth("", "jwt-secret", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := auth.Login(context.Background(), "anything")
	require.ErrorIs(t, err, ErrAuthDisabled)

	issued, err := auth.IssueToken("discord-gateway", RoleBot)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(defaultTokenTTL), issued.ExpiresAt, 5*time.Second)
}

func TestAdminAuth_LoginMalformedHash(t *testing.T) {
	auth := NewAdminAuth("not-a-bcrypt-hash", "jwt-secret", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := auth.Login(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestAdminAuth_IssueToken(t *testing.T) {
	auth := NewAdminAuth("", "jwt-secret", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name    string
		subject string
		role    string
		wantErr error
	}{
		{name: "bot", subject: "discord-gateway", role: RoleBot},
		{name: "admin", subject: "ops", role: RoleAdmin},
		{name: "unknown role", subject: "discord-gateway", role: "superuser", wantErr: ErrValidation},
		{name: "empty role", subject: "discord-gateway", role: "", wantErr: ErrValidation},
		{name: "blank subject", subject: "  ", role: RoleBot, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issued, err := auth.IssueToken(tt.subject, tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, issued)
				return
			}
			require.NoError(t, err)
			parsed, err := jwt.Parse(issued.Token, func(token *jwt.Token) (interface{}, error) {
				return []byte("jwt-secret"), nil
			})
			require.NoError(t, err)
			claims := parsed.Claims.(jwt.MapClaims)
			assert.Equal(t, tt.role, claims["role"])
			assert.Equal(t, tt.subject, claims["sub"])
		})
	}
}
