// Package health expone liveness y readiness.
package health

import (
	"net/http"

	httperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// Controller handles /healthz and /readyz.
type Controller struct {
	repo core.Repository
}

// New creates a new health controller.
func New(repo core.Repository) *Controller {
	return &Controller{repo: repo}
}

// Healthz: el proceso responde.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// Readyz: el store responde.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Ping(r.Context()); err != nil {
		httperrors.WriteError(w, httperrors.New(http.StatusServiceUnavailable, "store unavailable"))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"}, "")
}
