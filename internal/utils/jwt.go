package utils // package utils provides helper functions for token creation and hashing

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token represents a signed session token along with its expiry.  The Token
// field contains the serialized JWT string; Exp stores the UTC expiration
// time.  Both access and refresh tokens use this shape: sessions are
// stateless, so the refresh token is itself a signed JWT carrying the user
// id rather than a random value stored server-side.
type Token struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs a short-lived HS256 JWT for a user.  The
// JWT carries the user id as the subject plus standard exp/iat claims.
func NewAccessToken(secret string, userID uint64, ttlMin int) (Token, error) {
    return newToken(secret, userID, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken builds and signs a long-lived HS256 JWT for a user.  The
// ttlDays parameter controls how many days the token stays valid.  There is
// no server-side record of issued refresh tokens; logout only clears the
// cookie and the token remains cryptographically valid until expiry.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (Token, error) {
    return newToken(secret, userID, time.Duration(ttlDays)*24*time.Hour)
}

func newToken(secret string, userID uint64, ttl time.Duration) (Token, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.MapClaims{
        "userId": userID,
        "exp":    exp.Unix(),
        "iat":    now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return Token{}, err
    }
    return Token{Token: signed, Exp: exp}, nil
}

// ParseUserID verifies a token's signature and expiry and extracts the user
// id it carries.  Any failure (bad signature, wrong algorithm, expired,
// missing claim) returns a non-nil error; callers treat all of them as
// "unauthorized" without distinguishing further.
func ParseUserID(secret, raw string) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with a different algorithm than we issue.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        return 0, err
    }
    if !tok.Valid {
        return 0, jwt.ErrTokenUnverifiable
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, jwt.ErrTokenInvalidClaims
    }
    // JSON numbers decode as float64.
    uid, ok := claims["userId"].(float64)
    if !ok || uid <= 0 {
        return 0, jwt.ErrTokenInvalidClaims
    }
    return uint64(uid), nil
}
