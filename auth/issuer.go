package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of tokens handed out by the login route.
type Claims struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs tokens with a shared HMAC secret.
type Issuer struct {
	method jwt.SigningMethod
	key    []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer for the given secret and HMAC algorithm name.
func NewIssuer(secretKey, algorithm string) (*Issuer, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("issuer secret key is required")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
	return &Issuer{
		method: method,
		key:    []byte(secretKey),
		now:    time.Now,
	}, nil
}

// Sign returns the compact serialisation of claims. IssuedAt is stamped when
// the caller leaves it empty; no expiry is added.
func (i *Issuer) Sign(claims Claims) (string, error) {
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(i.now())
	}
	token := jwt.NewWithClaims(i.method, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
