package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/platemate/auth-gateway/internal/domain/account/errors"
)

const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

// Claims is the payload carried by both session and reset tokens. Reset
// tokens omit the display name and carry PurposeReset, so they can never
// pass where a session token is expected.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose"`
}

// Codec signs and verifies self-contained bearer tokens with a
// process-wide HMAC secret. Verification fails closed: a bad signature,
// unexpected algorithm, malformed structure or elapsed expiry all yield
// ErrInvalidToken with no further detail.
type Codec struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewCodec(secret string, sessionTTL, resetTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

func (c *Codec) IssueSession(id uuid.UUID, email, name string) (string, error) {
	return c.issue(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
		Email:            email,
		Name:             name,
		Purpose:          PurposeSession,
	}, c.sessionTTL)
}

func (c *Codec) IssueReset(id uuid.UUID, email string) (string, error) {
	return c.issue(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
		Email:            email,
		Purpose:          PurposeReset,
	}, c.resetTTL)
}

func (c *Codec) issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.ID = uuid.NewString()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign token")
	}
	return signed, nil
}

func (c *Codec) Verify(raw string) (Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithIssuedAt(), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
