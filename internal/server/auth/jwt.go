// Package auth mints and validates the signed tokens used by the
// authentication flows: short-lived access tokens and longer-lived refresh
// tokens, both HS256 JWTs carrying audience and issuer claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claim names with reserved meaning. Extra claims passed to Mint can never
// shadow these.
const (
	ClaimSubject        = "sub"
	ClaimEmail          = "email"
	ClaimRefreshTokenID = "refreshTokenId"
)

// Issuer signs and validates tokens with a fixed secret, audience, and
// issuer. All three are required; the process must not start without them.
type Issuer struct {
	secret   []byte
	audience string
	issuer   string
}

// NewIssuer constructs an Issuer. Empty secret, audience, or issuer is a
// configuration error.
func NewIssuer(secret, audience, issuer string) (*Issuer, error) {
	if secret == "" || audience == "" || issuer == "" {
		return nil, errors.New("auth: secret, audience and issuer are all required")
	}
	return &Issuer{secret: []byte(secret), audience: audience, issuer: issuer}, nil
}

// Mint creates a signed token for subject, expiring after validity.
// Extra claims are merged into the payload; the registered claims
// (sub, aud, iss, iat, exp) always win over extra entries.
func (i *Issuer) Mint(subject string, validity time.Duration, extra map[string]any) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["aud"] = i.audience
	claims["iss"] = i.issuer
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses the token and enforces signature, audience, issuer, and
// expiry. No clock-skew leeway is applied. Every failure is reported as
// common.ErrInvalidToken so callers cannot distinguish causes.
func (i *Issuer) Validate(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(i.audience),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// StringClaim returns the named claim if present and a string.
func StringClaim(claims jwt.MapClaims, name string) (string, bool) {
	v, ok := claims[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
