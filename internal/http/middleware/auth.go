package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var errMissingToken = errors.New("missing bearer token")

// RequireOwner rejects requests unless they carry an HS256 bearer token whose
// subject equals the owner addressed by the request. ownerOf extracts that
// owner, typically from route variables.
func RequireOwner(secret []byte, ownerOf func(*http.Request) string) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			var claims jwt.RegisteredClaims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if claims.Subject == "" || claims.Subject != ownerOf(r) {
				writeAuthError(w, http.StatusForbidden, "token does not grant access to this user")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", errMissingToken
	}
	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
