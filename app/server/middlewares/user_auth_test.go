package middlewares

import (
	"book-library/app/server/jwt"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type lookupFunc func(ctx context.Context, username string) (*models.User, error)

func (f lookupFunc) Lookup(ctx context.Context, username string) (*models.User, error) {
	return f(ctx, username)
}

func knownUsers(users ...models.User) lookupFunc {
	return func(_ context.Context, username string) (*models.User, error) {
		for _, u := range users {
			if u.Username == username {
				return &u, nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", username, stores.ErrNotFound)
	}
}

func authServer(t *testing.T, users UserLookup) (*echo.Echo, *jwt.JWT) {
	t.Helper()
	j, err := jwt.New("middleware-test-key", time.Hour)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, user.Username+":"+string(user.Role))
	}, UserAuth(j, users, zap.NewNop()))

	return e, j
}

func call(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestUserAuthPassesUserToHandler(t *testing.T) {
	e, j := authServer(t, knownUsers(models.User{Username: "root", Role: models.RoleAdmin}))

	token, _, err := j.SignToken("root")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec := call(e, "Bearer "+token)
	if rec.Code != http.StatusOK || rec.Body.String() != "root:admin" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestUserAuthRejections(t *testing.T) {
	e, j := authServer(t, knownUsers(models.User{Username: "root", Role: models.RoleAdmin}))

	ghost, _, _ := j.SignToken("ghost")
	other, _ := jwt.New("another-key", time.Hour)
	foreign, _, _ := other.SignToken("root")

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "Token is missing!"},
		{"basic scheme", "Basic cm9vdDpyb290", "Token is malformed!"},
		{"empty bearer", "Bearer ", "Token is malformed!"},
		{"garbage", "Bearer abc", "Token is invalid!"},
		{"foreign key", "Bearer " + foreign, "Token is invalid!"},
		{"unknown user", "Bearer " + ghost, "Token is invalid!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(e, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("want 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := message(t, rec); got != tc.message {
				t.Fatalf("want %q, got %q", tc.message, got)
			}
		})
	}
}

func TestUserAuthLookupFailure(t *testing.T) {
	e, j := authServer(t, lookupFunc(func(context.Context, string) (*models.User, error) {
		return nil, errors.New("connection refused")
	}))

	token, _, _ := j.SignToken("root")
	rec := call(e, "Bearer "+token)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("backend failure should not look like a bad token, got %d", rec.Code)
	}
}
