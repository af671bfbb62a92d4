package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "atlas-data-management"

// ErrUnauthorized signals a missing, invalid, or expired token.
var ErrUnauthorized = errors.New("unauthorized")

// Service issues and validates bearer tokens for the service's mutating
// endpoints. Tokens are HS256-signed with a shared secret; there is no user
// store.
type Service struct {
	cfg     config.AuthConfig
	parser  *jwt.Parser
	nowFunc func() time.Time
}

// NewService constructs a token service.
func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		cfg:     cfg,
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
		nowFunc: time.Now,
	}
}

// IssueToken mints a bearer token for the named operator.
func (s *Service) IssueToken(subject string) (string, error) {
	now := s.nowFunc()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": tokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry and returns the subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrUnauthorized
	}

	expFloat, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(expFloat), 0).Before(s.nowFunc()) {
		return "", ErrUnauthorized
	}

	return sub, nil
}
