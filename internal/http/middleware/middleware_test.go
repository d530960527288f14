package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"reelshelf/internal/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantHeader string
		wantStatus int
	}{
		{name: "allowed origin", allowed: []string{"http://localhost:5173"}, origin: "http://localhost:5173", method: http.MethodGet, wantHeader: "http://localhost:5173", wantStatus: http.StatusOK},
		{name: "other origin", allowed: []string{"http://localhost:5173"}, origin: "http://evil.test", method: http.MethodGet, wantHeader: "", wantStatus: http.StatusOK},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://any.test", method: http.MethodGet, wantHeader: "*", wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"http://a.test", "http://b.test"}, origin: "http://b.test", method: http.MethodOptions, wantHeader: "http://b.test", wantStatus: http.StatusNoContent},
		{name: "none configured", allowed: nil, origin: "http://a.test", method: http.MethodGet, wantHeader: "", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/media/browse", nil)
			req.Header.Set("Origin", tc.origin)
			rr := httptest.NewRecorder()

			CORS(tc.allowed)(okHandler).ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tc.wantHeader {
				t.Fatalf("expected allow-origin %q, got %q", tc.wantHeader, got)
			}
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestRequestLoggingPropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seen string
	handler := RequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rr.Header().Get("X-Request-ID"))
	}
	if !strings.Contains(buf.String(), `"status_code":418`) {
		t.Fatalf("expected status in log, got %q", buf.String())
	}
}

func TestRequestLoggingGeneratesRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	RequestLogging(zerolog.Nop())(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(rr.Header().Get("X-Request-ID")) != 36 {
		t.Fatalf("expected generated uuid, got %q", rr.Header().Get("X-Request-ID"))
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

func signToken(t *testing.T, secret []byte, method jwt.SigningMethod, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRequireOwner(t *testing.T) {
	secret := []byte("0123456789abcdef")
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "matching subject", header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, "u1", future), wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + signToken(t, secret, jwt.SigningMethodHS256, "u1", future), wantStatus: http.StatusOK},
		{name: "other subject", header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, "u2", future), wantStatus: http.StatusForbidden},
		{name: "wrong secret", header: "Bearer " + signToken(t, []byte("another-secret-value"), jwt.SigningMethodHS256, "u1", future), wantStatus: http.StatusUnauthorized},
		{name: "wrong method", header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS512, "u1", future), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, "u1", time.Now().Add(-time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
	}

	guard := RequireOwner(secret, func(*http.Request) string { return "u1" })

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/u1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			guard(okHandler).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}
