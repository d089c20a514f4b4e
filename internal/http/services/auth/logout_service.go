package auth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/accountd/internal/observability/logger"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// LogoutService cierra la sesión activa de un usuario.
type LogoutService interface {
	Logout(ctx context.Context, userID string) error
}

type logoutService struct {
	repo core.Repository
}

// NewLogoutService creates a new LogoutService.
func NewLogoutService(deps Deps) LogoutService {
	return &logoutService{repo: deps.Repo}
}

// Logout limpia CurrentRefreshToken: cualquier refresh emitido antes
// queda revocado al instante aunque su firma siga siendo válida. Es
// idempotente, un usuario ya borrado no es un error.
func (s *logoutService) Logout(ctx context.Context, userID string) error {
	err := s.repo.UpdateRefreshToken(ctx, userID, "")
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		logger.From(ctx).Error("logout failed",
			logger.Layer("service"),
			logger.Component("auth.logout"),
			logger.UserID(userID),
			logger.Err(err),
		)
		return err
	}
	logger.From(ctx).Info("session closed", logger.UserID(userID))
	return nil
}
