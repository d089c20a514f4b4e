// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/accountd/internal/config"
	authctrl "github.com/dropDatabas3/accountd/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/accountd/internal/http/controllers/health"
	httperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	mw "github.com/dropDatabas3/accountd/internal/http/middlewares"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
	jwtx "github.com/dropDatabas3/accountd/internal/jwt"
	"github.com/dropDatabas3/accountd/internal/metrics"
)

// Deps contiene todo lo que el router necesita para armar los handlers.
type Deps struct {
	Config *config.Config
	Issuer *jwtx.Issuer
	Auth   svc.Deps
}

// New construye el router con la cadena global de middlewares y las
// rutas de cuenta, salud y métricas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// El orden importa: recover por fuera de todo, luego request id
	// para que logging y metrics ya lo tengan.
	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())
	r.Use(mw.WithCORS(deps.Config.Server.CORSAllowedOrigins))

	health := healthctrl.New(deps.Auth.Repo)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	_ = metrics.Register(nil) // idempotente
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	auth := authctrl.New(deps.Config, deps.Auth)
	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", auth.Register.Register)
		r.Post("/login", auth.Login.Login)
		r.Post("/refresh-token", auth.Refresh.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(deps.Issuer))
			r.Post("/logout", auth.Logout.Logout)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.NotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	return r
}
