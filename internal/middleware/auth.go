package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const CredentialKey contextKey = "credential"

// BearerCredential copies an `Authorization: Bearer <key>` header into the
// request context for the JSON API. The key is the caller's own upstream
// credential; it is forwarded, not checked. Requests without the header pass
// through so the handler can fall back to the body field.
func BearerCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Support both "Bearer <key>" and "<key>" formats
		key := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if key == "" {
			http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), CredentialKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCredentialFromContext returns the credential set by BearerCredential, if any.
func GetCredentialFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(CredentialKey).(string); ok {
		return key
	}
	return ""
}
