package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types
    "strings" // strings provides trimming helpers

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT middleware stores the subject claim under "user_id"; the
// claim may arrive as a float64 (JSON number), string or integer type
// depending on how the token was minted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int64:
        if t > 0 {
            return uint64(t), nil
        }
    case float64:
        if t > 0 {
            return uint64(t), nil
        }
    case string:
        s := strings.TrimSpace(t)
        if s != "" {
            if n, err := strconv.ParseUint(s, 10, 64); err == nil && n > 0 {
                return n, nil
            }
        }
    }
    return 0, errors.New("missing user id")
}

// pathID parses the :id path parameter as a positive uint64.
func pathID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}
