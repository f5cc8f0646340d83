package middleware

// identity.go holds the identity helper used by the rate limiter, which
// keys its buckets per caller and needs a stable string that also works
// for guests.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id stored by JWTAuth as a
// string.  The claim value may be a JSON number or a string depending on
// the issuer.  Unauthenticated requests yield "guest".
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        if v > 0 {
            return fmt.Sprintf("%.0f", v)
        }
    case uint64:
        return fmt.Sprintf("%d", v)
    case int64:
        if v > 0 {
            return fmt.Sprintf("%d", v)
        }
    }
    return "guest"
}
