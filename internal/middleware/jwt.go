package middleware // middleware provides shared request processing for handlers

import (
    "errors"   // sentinel values for token validation failures
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request
// context.  Tokens are issued by the external auth service; this server
// only verifies them, so the provided secret must match the issuer's.
// Handlers access the authenticated identity via c.Get("user_id") and
// c.Get("role") (values MEMBER or ADMIN).
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            claims, err := bearerClaims(c, secret)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
            }
            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}

// JWTOptional is like JWTAuth but lets requests without an Authorization
// header through as guests.  A present-but-invalid token is still
// rejected: silently downgrading a bad token to a guest would mask
// client bugs.  Used on the admission pre-check, where the guest branch
// of the booking engine applies.
func JWTOptional(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Header.Get("Authorization") == "" {
                return next(c)
            }
            claims, err := bearerClaims(c, secret)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
            }
            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}

// bearerClaims extracts and validates the Bearer token, returning its
// claims.  Only HS256 tokens signed with secret are accepted.
func bearerClaims(c echo.Context, secret string) (jwt.MapClaims, error) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return nil, errMissingToken
    }
    raw := strings.TrimPrefix(auth, "Bearer ")

    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return nil, errInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return nil, errInvalidClaims
    }
    return claims, nil
}

var (
    errMissingToken  = errors.New("missing bearer token")
    errInvalidToken  = errors.New("invalid token")
    errInvalidClaims = errors.New("invalid claims")
)
