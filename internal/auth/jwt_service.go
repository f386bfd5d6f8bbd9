package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTokenTTL is the default lifetime of access tokens.
	DefaultAccessTokenTTL = 30 * time.Minute
	// DefaultRefreshTokenTTL is the default lifetime of refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims carried by both token kinds. The subject
// is the user's unique name.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService signs and validates HMAC tokens.
type JWTService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a JWT service. algorithm selects the HMAC variant
// (HS256, HS384, HS512); anything else falls back to HS256. Zero TTLs take
// the defaults.
func NewJWTService(secret, algorithm string, accessTTL, refreshTTL time.Duration) *JWTService {
	method := jwt.SigningMethodHS256
	switch algorithm {
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	}
	if accessTTL == 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL == 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &JWTService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Secret exposes the signing key for middleware configuration.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// GenerateAccessToken signs a short-lived token whose subject is the user name.
func (s *JWTService) GenerateAccessToken(name string) (string, error) {
	return s.generate(name, s.accessTTL, "")
}

// GenerateRefreshToken signs a long-lived token used only to mint new access
// tokens. It carries a JTI so individual tokens are distinguishable in logs.
func (s *JWTService) GenerateRefreshToken(name string) (string, error) {
	return s.generate(name, s.refreshTTL, uuid.NewString())
}

func (s *JWTService) generate(subject string, ttl time.Duration, id string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks signature and expiry and returns the claims. The
// claims always carry a non-empty subject on success.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
