package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/landchain-vn/landchain/pkg/composables"
)

const (
	userIDHeader  = "X-User-Id"
	userOrgHeader = "X-User-Org"
)

// ProvideIdentity reads the caller principal installed by the upstream
// authentication gateway. Requests without a verified identity are rejected
// before any handler runs; token verification itself happens upstream.
func ProvideIdentity() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/debug/") {
				next.ServeHTTP(w, r)
				return
			}

			userID := r.Header.Get(userIDHeader)
			orgMSP := r.Header.Get(userOrgHeader)
			if userID == "" || orgMSP == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"code":"UNAUTHENTICATED","message":"missing caller identity"}`))
				return
			}

			ctx := composables.WithIdentity(r.Context(), composables.Identity{
				UserID: userID,
				OrgMSP: orgMSP,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
