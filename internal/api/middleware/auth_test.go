package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tailormate/tailormate-api/pkg/token"
)

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	m := token.NewManager("secret", ttl)
	signed, err := m.Issue("user_1", "Customer")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, req *http.Request) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(token.NewManager("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuth_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := runAuth(t, req)
	if code := httpCode(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing token, got %d", code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, -time.Minute))

	_, err := runAuth(t, req)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", code)
	}
	var he *echo.HTTPError
	errors.As(err, &he)
	if he.Message != "token expired, please log in again" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_MalformedToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	_, err := runAuth(t, req)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", code)
	}
	var he *echo.HTTPError
	errors.As(err, &he)
	if he.Message != "invalid token" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, time.Hour))

	c, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("auth failed: %v", err)
	}
	if c.Get("userID") != "user_1" {
		t.Fatalf("userID not injected")
	}
	if c.Get("role") != "Customer" {
		t.Fatalf("role not injected")
	}
}

func TestAuth_TokenInQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token="+signedToken(t, time.Hour), nil)

	if _, err := runAuth(t, req); err != nil {
		t.Fatalf("auth failed: %v", err)
	}
}

func TestAuth_TokenInCustomHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-access-token", signedToken(t, time.Hour))

	if _, err := runAuth(t, req); err != nil {
		t.Fatalf("auth failed: %v", err)
	}
}

func TestAuth_TokenInBody_RestoresBody(t *testing.T) {
	body := `{"token":"` + signedToken(t, time.Hour) + `","name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("auth failed: %v", err)
	}

	// The body must still be readable for downstream binding.
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		t.Fatalf("body not restored: %v", err)
	}
	if payload.Name != "Ada" {
		t.Fatalf("body content lost: %+v", payload)
	}
}

func TestAuth_BearerSupersedesBody(t *testing.T) {
	// A valid token in the body must be ignored when a bad Authorization
	// header is present.
	body := `{"token":"` + signedToken(t, time.Hour) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer bogus")

	_, err := runAuth(t, req)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected header to supersede body, got %d", code)
	}
}
