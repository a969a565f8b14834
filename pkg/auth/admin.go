package auth

import (
	"context"
	"net/http"
	"strings"
)

const isAdminKey contextKey = "is_admin"

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns whether the authenticated user is a board admin.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// ParseAdminIDs parses a comma-separated admin user ID list (ADMIN_USER_IDS).
func ParseAdminIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// AdminFlag is middleware that marks the request context as admin when the
// authenticated user ID is in adminIDs. It must run after RequireAuth /
// DevAuth; handlers enforce the flag via IsAdminFromContext.
func AdminFlag(adminIDs []string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		set[id] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := UserIDFromContext(r.Context()); ok {
				if _, isAdmin := set[userID]; isAdmin {
					r = r.WithContext(WithIsAdmin(r.Context(), true))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
