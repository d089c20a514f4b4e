// Package auth expone los handlers HTTP de cuenta. Cada controller
// traduce la request, delega en su service y mapea los errores
// sentinela al envelope de error.
package auth

import (
	"github.com/dropDatabas3/accountd/internal/config"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
)

// Controllers agrupa los handlers del módulo de cuenta.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Logout   *LogoutController
	Refresh  *RefreshController
}

// New wires the auth controllers from the shared services and config.
func New(cfg *config.Config, deps svc.Deps) *Controllers {
	tokens := svc.NewTokenService(deps)
	cookies := helpers.CookieConfig{
		Domain:     cfg.Cookies.Domain,
		SameSite:   cfg.Cookies.SameSite,
		Secure:     cfg.CookieSecure(),
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
	}

	return &Controllers{
		Register: NewRegisterController(svc.NewRegisterService(deps), cfg),
		Login:    NewLoginController(svc.NewLoginService(deps, tokens), cookies),
		Logout:   NewLogoutController(svc.NewLogoutService(deps), cookies),
		Refresh:  NewRefreshController(tokens, cookies),
	}
}
