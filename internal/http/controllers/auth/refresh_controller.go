package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/accountd/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
)

// RefreshController handles POST /v1/auth/refresh-token.
type RefreshController struct {
	tokens  svc.TokenService
	cookies helpers.CookieConfig
}

// NewRefreshController creates a new refresh controller.
func NewRefreshController(tokens svc.TokenService, cookies helpers.CookieConfig) *RefreshController {
	return &RefreshController{tokens: tokens, cookies: cookies}
}

// Refresh rota el par de tokens. El refresh entrante se lee de la
// cookie y, si no está, del body. No requiere access token: la posesión
// del refresh vigente es la prueba de identidad en este endpoint.
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	presented := ""
	if cookie, err := r.Cookie(helpers.RefreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB
		var req dto.RefreshRequest
		// Body vacío o JSON roto cuenta como "sin token".
		_ = json.NewDecoder(r.Body).Decode(&req)
		presented = req.RefreshToken
	}
	if presented == "" {
		httperrors.WriteError(w, httperrors.Unauthorized(svc.ErrRefreshTokenMissing.Error()))
		return
	}

	pair, err := c.tokens.Rotate(ctx, presented)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrInvalidRefreshToken), errors.Is(err, svc.ErrRefreshTokenUsed):
			httperrors.WriteError(w, httperrors.Unauthorized(err.Error()))
		case errors.Is(err, svc.ErrTokenIssueFailed):
			httperrors.WriteError(w, httperrors.InternalError(err.Error()))
		default:
			log.Error("refresh error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	helpers.SetTokenCookies(w, c.cookies, pair.AccessToken, pair.RefreshToken)
	w.Header().Set("Cache-Control", "no-store")

	helpers.WriteJSON(w, http.StatusOK, dto.RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}
