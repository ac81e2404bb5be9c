// Package auth issues and checks admin session tokens for the shared admin password.
// The password is configured either in plain text or as a bcrypt hash.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"draft-order/internal/config"
	"draft-order/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer  = "draft-order"
	subject = "admin"
)

type Issuer struct {
	password []byte
	hash     []byte
	secret   []byte
	ttl      time.Duration
	clock    clockwork.Clock
	logger   zerolog.Logger
}

func NewIssuer(cfg *config.Config, clock clockwork.Clock, logger zerolog.Logger) *Issuer {
	return &Issuer{
		password: []byte(cfg.AdminPassword),
		hash:     []byte(cfg.AdminPasswordHash),
		secret:   []byte(cfg.SecretKey),
		ttl:      cfg.AdminSessionTTL,
		clock:    clock,
		logger:   logger,
	}
}

// Login trades the admin password for a signed token valid for the session TTL.
func (i *Issuer) Login(password string) (string, time.Time, error) {
	if !i.matches(password) {
		i.logger.Warn().Msg("admin login failed")
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	now := i.clock.Now()
	expiresAt := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	i.logger.Info().Time("expires_at", expiresAt).Msg("admin logged in")
	return signed, expiresAt, nil
}

func (i *Issuer) matches(password string) bool {
	if len(i.hash) > 0 {
		return bcrypt.CompareHashAndPassword(i.hash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), i.password) == 1
}

func (i *Issuer) Verify(token string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: session expired", domain.ErrUnauthenticated)
		}
		return fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}
	if claims.Subject != subject || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}
	return nil
}
