package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var (
	ErrJWKSNotInitialized = errors.New("JWKS not initialized")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrMissingSubject     = errors.New("token has no subject")
)

var jwks keyfunc.Keyfunc

// InitJWKS loads the identity provider public keys from jwksURL. The keys are
// refreshed in the background by keyfunc.
func InitJWKS(jwksURL string) error {
	kf, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}

	jwks = kf
	log.Infof("JWKS loaded from %s", jwksURL)
	return nil
}

// TokenData is what the API keeps from a validated access token.
type TokenData struct {
	Sub   string
	Email string
	// Exp is in seconds.
	Exp int64
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken checks the signature against the loaded JWKS and requires an
// unexpired token carrying a subject.
func ValidateToken(header string) (*TokenData, error) {
	if jwks == nil {
		return nil, ErrJWKSNotInitialized
	}
	return parseToken(header, jwks.Keyfunc)
}

func parseToken(header string, kf jwt.Keyfunc) (*TokenData, error) {
	raw := bearerToken(header)
	if raw == "" {
		return nil, ErrMissingToken
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, kf, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &TokenData{
		Sub:   claims.Subject,
		Email: claims.Email,
		Exp:   claims.ExpiresAt.Unix(),
	}, nil
}

func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	return ValidateToken(c.Request().Header.Get(echo.HeaderAuthorization))
}

func bearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
}
