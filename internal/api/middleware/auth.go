package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// RequireToken guards back-office routes with a static bearer token.
// An empty token rejects every request.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				err := apperrors.NewUnauthorizedError("unauthorized")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(apperrors.HTTPStatus(err))
				json.NewEncoder(w).Encode(map[string]string{"error": apperrors.PublicMessage(err)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
