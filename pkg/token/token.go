package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issued tokens identify either a user or a company principal.
const (
	KindUser    = "user"
	KindCompany = "company"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a portal bearer token.
type Claims struct {
	AccountID int64
	Kind      string
}

// Issuer signs and verifies HS256 bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    30 * 24 * time.Hour,
	}
}

// Issue creates a signed token for the given account.
func (i *Issuer) Issue(accountID int64, kind string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(accountID, 10),
		"kind": kind,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	})
	return t.SignedString(i.secret)
}

// Verify parses a token string and returns its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	kind, _ := claims["kind"].(string)
	if kind != KindUser && kind != KindCompany {
		return nil, ErrInvalidToken
	}

	return &Claims{AccountID: id, Kind: kind}, nil
}
