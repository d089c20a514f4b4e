package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	mw "github.com/dropDatabas3/accountd/internal/http/middlewares"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
)

// LogoutController handles POST /v1/auth/logout (requiere auth).
type LogoutController struct {
	service svc.LogoutService
	cookies helpers.CookieConfig
}

// NewLogoutController creates a new logout controller.
func NewLogoutController(service svc.LogoutService, cookies helpers.CookieConfig) *LogoutController {
	return &LogoutController{service: service, cookies: cookies}
}

// Logout revoca el refresh token guardado y limpia ambas cookies.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LogoutController.Logout"))

	userID := mw.GetUserID(ctx)
	if userID == "" {
		// RequireAuth debería haber cortado antes.
		httperrors.WriteError(w, httperrors.Unauthorized("unauthorized request"))
		return
	}

	if err := c.service.Logout(ctx, userID); err != nil {
		log.Error("logout error", logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	helpers.ClearTokenCookies(w, c.cookies)
	helpers.WriteJSON(w, http.StatusOK, struct{}{}, "user logged out")
}
