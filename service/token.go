package service

import (
	"denuncias/models"
	"denuncias/utils"
	"fmt"
	"time"
)

// TokenIssuer signs session tokens for staff and citizen logins.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer. ttl defaults to one hour.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the identity and wraps it with the public user view.
func (t *TokenIssuer) Issue(id int64, email string, role models.Role, user any) (*models.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(id, email, role, t.secret, t.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
