package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the side of the marketplace an actor acts for.
type Role string

const (
	RoleMaker  Role = "maker"
	RoleWerker Role = "werker"
)

func (r Role) Valid() bool {
	return r == RoleMaker || r == RoleWerker
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Actor is the authenticated caller carried by a token.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// TokenIssuer signs and verifies HS256 actor tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

func (i *TokenIssuer) Generate(actorID uuid.UUID, role Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidClaims, role)
	}
	claims := jwt.MapClaims{
		"user_id": actorID.String(),
		"role":    string(role),
		"exp":     jwt.NewNumericDate(time.Now().Add(i.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) Parse(tokenStr string) (*Actor, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidClaims
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id is not a uuid", ErrInvalidClaims)
	}
	rawRole, _ := claims["role"].(string)
	role := Role(rawRole)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidClaims, rawRole)
	}

	return &Actor{ID: id, Role: role}, nil
}
