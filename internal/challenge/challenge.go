// internal/challenge/challenge.go
//
// Friend challenges: a player picks a target word and sends a friend a signed
// token; the friend redeems it for a fresh game against that word.
//
// Tokens are HS256 JWTs. They are signed, not encrypted: the answer is
// readable by anyone holding the token.
package challenge

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/friendle/internal/game"
)

const (
	issuer     = "friendle"
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid challenge token")
	ErrExpired      = errors.New("challenge expired")
)

// Challenge is the payload carried by a token.
type Challenge struct {
	Answer string `json:"answer"`
	Limit  int    `json:"limit"`
	From   string `json:"from"`
}

type claims struct {
	Answer string `json:"ans"`
	Limit  int    `json:"lim,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies challenge tokens with a single HMAC key.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewIssuer builds an Issuer. A ttl <= 0 selects DefaultTTL.
func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{key: key, ttl: ttl, now: time.Now}
}

// Issue validates c and returns a signed token plus its expiry.
func (i *Issuer) Issue(c Challenge) (string, time.Time, error) {
	s, err := game.New(c.Answer, c.Limit)
	if err != nil {
		return "", time.Time{}, err
	}
	now := i.now()
	exp := now.Add(i.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Answer: s.Target,
		Limit:  s.Limit,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   c.From,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign challenge: %w", err)
	}
	return ss, exp, nil
}

// Parse verifies signature, algorithm, issuer and expiry and returns the payload.
func (i *Issuer) Parse(token string) (Challenge, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl,
		func(t *jwt.Token) (interface{}, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Challenge{}, ErrExpired
	case err != nil:
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Challenge{Answer: cl.Answer, Limit: cl.Limit, From: cl.Subject}, nil
}
