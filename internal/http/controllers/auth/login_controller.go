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

// LoginController handles POST /v1/auth/login.
type LoginController struct {
	service svc.LoginService
	cookies helpers.CookieConfig
}

// NewLoginController creates a new login controller.
func NewLoginController(service svc.LoginService, cookies helpers.CookieConfig) *LoginController {
	return &LoginController{service: service, cookies: cookies}
}

// Login autentica y entrega los tokens por los dos canales: cookies
// httpOnly y body. El cliente usa el que le convenga.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrLoginMissingIdentifier), errors.Is(err, svc.ErrLoginMissingPassword):
			httperrors.WriteError(w, httperrors.BadRequest(err.Error()))
		case errors.Is(err, svc.ErrLoginUserNotFound):
			httperrors.WriteError(w, httperrors.NotFound(err.Error()))
		case errors.Is(err, svc.ErrLoginInvalidCredentials):
			httperrors.WriteError(w, httperrors.Unauthorized(err.Error()))
		case errors.Is(err, svc.ErrTokenIssueFailed):
			httperrors.WriteError(w, httperrors.InternalError(err.Error()))
		default:
			log.Error("login error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	helpers.SetTokenCookies(w, c.cookies, result.AccessToken, result.RefreshToken)
	w.Header().Set("Cache-Control", "no-store")

	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "user logged in successfully")
}
