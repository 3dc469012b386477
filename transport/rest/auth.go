package rest

import (
	"net/http"
	"strings"
)

// callerRole resolves the caller's role from the Authorization header. The
// token's verified role claim decides; a bare header without a valid admin
// token still counts as the lover.
func (that *Server) callerRole(r *http.Request) string {
	return that.auth.ResolveRole(bearerToken(r))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
