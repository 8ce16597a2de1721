package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"cat-registry/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenSource extrae el token de sesión del request (p.ej. cookie firmada).
type TokenSource func(r *http.Request) string

// AuthContext:
// - Si verifier != nil => token desde cookie (tokens) o Bearer, Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-Owner-ID (+ X-Debug-Permission, default owner).
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier, tokens TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if claims, ok := debugClaims(r); ok {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := ""
			if tokens != nil {
				token = tokens(r)
			}
			if token == "" {
				token = bearerToken(r.Header.Get("Authorization"))
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// RequireClaims devuelve claims válidos o escribe 401.
func RequireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := GetClaims(r.Context())
	if !ok || c.OwnerID <= 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return c, true
}

// RequireAdmin exige permission=admin (401 sin sesión, 403 si es owner).
func RequireAdmin(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := RequireClaims(w, r)
	if !ok {
		return auth.Claims{}, false
	}
	if !c.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return c, true
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-Debug-Owner-ID"))
	if raw == "" {
		return auth.Claims{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, false
	}
	perm := auth.PermissionOwner
	if p, err := strconv.Atoi(strings.TrimSpace(r.Header.Get("X-Debug-Permission"))); err == nil && auth.Permission(p).Valid() {
		perm = auth.Permission(p)
	}
	return auth.Claims{OwnerID: id, Permission: perm}, true
}

// RequestToken devuelve el Bearer token del header Authorization, si hay.
func RequestToken(r *http.Request) string {
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
