package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coursehub/course-marketplace/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrCourseNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotCourseOwner, http.StatusForbidden},
		{domain.ErrNotEnrolled, http.StatusForbidden},
		{domain.ErrAlreadyEnrolled, http.StatusConflict},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrInvalidRating, http.StatusUnprocessableEntity},
		{domain.ErrInvalidRole, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		code, msg := renderError(t, tt.err)
		if code != tt.code {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.code, code)
		}
		if msg != tt.err.Error() {
			t.Fatalf("%v: expected message %q, got %q", tt.err, tt.err.Error(), msg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	code, _ := renderError(t, fmt.Errorf("%w: %q", domain.ErrInvalidLevel, "expert"))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestHTTPErrorHandler_DistinctForbiddenMessages(t *testing.T) {
	_, roleMsg := renderError(t, domain.ErrForbidden)
	_, ownerMsg := renderError(t, domain.ErrNotCourseOwner)
	if roleMsg == ownerMsg {
		t.Fatalf("role and ownership denials should carry distinct messages, both %q", roleMsg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	if code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if msg != "rate limit exceeded" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal details must never leak to the client.
	if msg != "internal server error" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
