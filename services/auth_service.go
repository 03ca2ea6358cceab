package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/scrim-tournaments/utils"
	"github.com/golang-jwt/jwt/v4"
)

// Роли в JWT.
const (
	RoleAdmin = "admin"
	RoleBot   = "bot" // шлюз чата, доставляет команды в /commands
)

var tokenRoles = []string{RoleAdmin, RoleBot}

const defaultTokenTTL = 24 * time.Hour

// AdminAuth issues tokens for the admin surface. The admin is a single
// configured identity; the password is checked against a bcrypt hash.
type AdminAuth interface {
	Login(ctx context.Context, password string) (*IssuedToken, error)
	IssueToken(subject, role string) (*IssuedToken, error)
}

type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type adminAuth struct {
	passwordHash []byte
	jwtSecret    []byte
	ttl          time.Duration
	logger       *slog.Logger
}

func NewAdminAuth(passwordHash, jwtSecret string, ttl time.Duration, logger *slog.Logger) AdminAuth {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &adminAuth{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		ttl:          ttl,
		logger:       logger,
	}
}

func (a *adminAuth) Login(ctx context.Context, password string) (*IssuedToken, error) {
	if len(a.passwordHash) == 0 {
		return nil, ErrAuthDisabled
	}
	if err := utils.CheckPasswordHash(password, string(a.passwordHash)); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			a.logger.WarnContext(ctx, "admin login rejected")
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return a.IssueToken("admin", RoleAdmin)
}

// IssueToken signs a token for any known role; the chat gateway gets RoleBot
// through `scrim issue-token`.
func (a *adminAuth) IssueToken(subject, role string) (*IssuedToken, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, validationErrorf("token subject is required")
	}
	if !slices.Contains(tokenRoles, role) {
		return nil, validationErrorf("unknown role %q (want %s)", role, strings.Join(tokenRoles, " or "))
	}
	issued := time.Now()
	expires := issued.Add(a.ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  issued.Unix(),
		"exp":  expires.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &IssuedToken{Token: signed, ExpiresAt: expires}, nil
}
