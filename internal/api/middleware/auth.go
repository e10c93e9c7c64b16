package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/pkg/token"
)

// maxBodyPeek bounds how much of a request body is buffered while looking
// for an embedded token.
const maxBodyPeek = 1 << 20

// Auth validates the session token and injects the caller's identity into
// the echo context under "userID" and "role".
//
// The token is taken from, in order: the JSON body field "token", the query
// parameter "token", the "x-access-token" header. A present
// "Authorization: Bearer" header supersedes all of them. A request with no
// token at all is refused with 403; a token that fails verification gets
// 401, with expiry distinguished from tampering.
func Auth(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusForbidden, "unauthorized access, token required")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired, please log in again")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("userID", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if auth := c.Request().Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if tok := tokenFromBody(c); tok != "" {
		return tok
	}
	if tok := c.QueryParam("token"); tok != "" {
		return tok
	}
	return c.Request().Header.Get("x-access-token")
}

// tokenFromBody peeks at a JSON request body for a top-level "token" field,
// then restores the body so handlers can still bind it.
func tokenFromBody(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodyPeek))
	if err != nil {
		return ""
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Token
}
