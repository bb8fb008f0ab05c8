// Package auth signs and parses the JWTs the server hands out: access tokens
// carrying the account identity and short-lived OAuth state tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims: the standard set plus the account id
// and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// StateClaims travel in the OAuth state parameter.
type StateClaims struct {
	jwt.RegisteredClaims
	Provider   string `json:"provider"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

var validMethods = jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})

func sign(claims jwt.Claims, secretKey []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// parse verifies tokenString into claims. An expired token yields
// common.ErrTokenExpired, anything else that fails common.ErrInvalidToken.
func parse(tokenString string, claims jwt.Claims, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secretKey, nil
	}, validMethods)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}
	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}

// GenerateToken returns an HS256 access token for the account and the moment
// it expires.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(validityDuration)

	tokenString, err := sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID: userID,
		Email:  email,
	}, secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expires, nil
}

// ParseToken verifies an access token and returns its claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// GetUserIDFromToken is ParseToken for callers that need only the account id.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GenerateStateToken signs the OAuth state for provider.
func GenerateStateToken(provider, redirectTo string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	nonce, err := common.MakeRandHexString(8)
	if err != nil {
		return "", err
	}
	return sign(StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Provider:   provider,
		RedirectTo: redirectTo,
	}, secretKey)
}

// ParseStateToken verifies an OAuth state token.
func ParseStateToken(tokenString string, secretKey []byte) (*StateClaims, error) {
	claims := &StateClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	return claims, nil
}
