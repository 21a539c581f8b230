// Package identity verifies bearer tokens issued by the external identity
// provider and maps verified principals onto local user records.
package identity

import (
	"fmt"
	"time"

	"restaurant-ordering/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew is the tolerance applied to exp, nbf and iat.
const clockSkew = 10 * time.Second

// Claims are the token claims the service relies on. The subject is the
// stable user id.
type Claims struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier for tokens signed with secret. When issuer
// is non-empty the iss claim must match it.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates token. Every failure is reported as
// model.ErrUnauthenticated wrapped with the underlying reason.
func (v *Verifier) Verify(token string) (*model.Principal, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", model.ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", model.ErrUnauthenticated)
	}

	return &model.Principal{
		ID:    claims.Subject,
		Name:  claims.Name,
		Phone: claims.PhoneNumber,
	}, nil
}

// Issue signs a token for p that expires after ttl. The service itself only
// verifies tokens; Issue serves local tooling and tests.
func (v *Verifier) Issue(p model.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:        p.Name,
		PhoneNumber: p.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
