package middlewares

import (
	"net/http"
	"strings"

	apperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	jwtx "github.com/dropDatabas3/accountd/internal/jwt"
)

// RequireAuth valida el access token y mete user id + username en el
// contexto. Busca primero el header Authorization (Bearer) y si no está
// cae a la cookie accessToken, igual que haría un cliente browser.
func RequireAuth(issuer *jwtx.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if c, err := r.Cookie(helpers.AccessTokenCookie); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				apperrors.WriteError(w, apperrors.Unauthorized("unauthorized request"))
				return
			}

			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				apperrors.WriteError(w, apperrors.Unauthorized("invalid access token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.Subject)
			ctx = WithUsername(ctx, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
