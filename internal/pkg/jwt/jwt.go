package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"agency-hub/internal/pkg/config"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

// UserClaims token payload; sub carries the user id
type UserClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"typ"` // access or refresh
	jwt.RegisteredClaims
}

// Identity the verified subject a pair is issued for
type Identity struct {
	ID    string
	Email string
	Role  string
}

// TokenPair access and refresh token issued together
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access token lifetime in seconds
}

// Issuer signs access tokens and refresh tokens with separate secrets
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewIssuer builds an issuer from config
func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
}

// IssuePair issues a fresh access and refresh token for identity
func (i *Issuer) IssuePair(identity Identity) (*TokenPair, error) {
	access, err := i.sign(identity, constants.JWTTypeAccess, i.accessTTL, i.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.sign(identity, constants.JWTTypeRefresh, i.refreshTTL, i.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.accessTTL / time.Second),
	}, nil
}

func (i *Issuer) sign(identity Identity, typ string, ttl time.Duration, secret []byte) (string, error) {
	now := i.now()
	claims := UserClaims{
		Email: identity.Email,
		Role:  identity.Role,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			Issuer:    i.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccess verifies an access token
func (i *Issuer) ParseAccess(tokenString string) (*UserClaims, error) {
	return i.parse(tokenString, i.accessSecret, constants.JWTTypeAccess)
}

// ParseRefresh verifies a refresh token
func (i *Issuer) ParseRefresh(tokenString string) (*UserClaims, error) {
	return i.parse(tokenString, i.refreshSecret, constants.JWTTypeRefresh)
}

// parse reports every failure (expired, malformed, bad signature, wrong type) as ErrInvalidToken
func (i *Issuer) parse(tokenString string, secret []byte, typ string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, pkgErrors.ErrInvalidToken.Message, err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid || claims.Type != typ || claims.Subject == "" {
		return nil, pkgErrors.ErrInvalidToken
	}

	return claims, nil
}
