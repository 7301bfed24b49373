package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jxdata/portal/internal/config"
)

const visitorIssuer = "jxdata-portal"

// VisitorClaims identifies an anonymous visitor. The JWT ID is the visitor ID.
type VisitorClaims struct {
	jwt.RegisteredClaims
}

// VisitorService issues and validates the signed visitor cookie that scopes
// a quiz session. It does not authenticate anyone.
type VisitorService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewVisitorService(cfg *config.Config) *VisitorService {
	return &VisitorService{
		secret: []byte(cfg.VisitorSecret),
		ttl:    cfg.VisitorTTL,
		now:    time.Now,
	}
}

// TTL returns how long an issued token stays valid.
func (s *VisitorService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a token for a new visitor and returns it with the visitor ID.
func (s *VisitorService) Issue() (string, string, error) {
	visitorID := uuid.New().String()
	now := s.now()

	claims := VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        visitorID,
			Issuer:    visitorIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign visitor token: %w", err)
	}

	return signed, visitorID, nil
}

// Validate parses a visitor token and returns its visitor ID.
func (s *VisitorService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &VisitorClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(visitorIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("parse visitor token: %w", err)
	}

	claims, ok := token.Claims.(*VisitorClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid visitor claims")
	}

	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", fmt.Errorf("invalid visitor id: %w", err)
	}

	return claims.ID, nil
}
