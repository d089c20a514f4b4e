package auth

import (
	"context"
	"fmt"
	"strings"

	dto "github.com/dropDatabas3/accountd/internal/http/dto/auth"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
	"github.com/dropDatabas3/accountd/internal/security/password"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// LoginService verifica credenciales y abre sesión.
type LoginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error)
}

// LoginResult contains the result of a successful login.
type LoginResult struct {
	User         *core.User
	AccessToken  string
	RefreshToken string
}

// Service errors
var (
	ErrLoginMissingIdentifier  = fmt.Errorf("username or email is required")
	ErrLoginMissingPassword    = fmt.Errorf("password is required")
	ErrLoginUserNotFound       = fmt.Errorf("user does not exist")
	ErrLoginInvalidCredentials = fmt.Errorf("invalid credentials")
)

type loginService struct {
	repo   core.Repository
	tokens TokenService
}

// NewLoginService creates a new LoginService.
func NewLoginService(deps Deps, tokens TokenService) LoginService {
	return &loginService{repo: deps.Repo, tokens: tokens}
}

// Login valida input, verifica el password contra el hash guardado y
// emite el par de tokens. "usuario no existe" y "password incorrecto"
// se reportan distinto a propósito (comportamiento heredado del API:
// unificarlos rompería clientes existentes).
func (s *loginService) Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	// El email tiene prioridad si vienen ambos.
	identifier := strings.TrimSpace(strings.ToLower(req.Email))
	if identifier == "" {
		identifier = strings.TrimSpace(strings.ToLower(req.Username))
	}
	if identifier == "" {
		return nil, ErrLoginMissingIdentifier
	}
	if req.Password == "" {
		return nil, ErrLoginMissingPassword
	}

	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		log.Info("login attempt for unknown identifier")
		return nil, ErrLoginUserNotFound
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		log.Warn("login with wrong password", logger.UserID(user.ID))
		return nil, ErrLoginInvalidCredentials
	}

	pair, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	// Re-fetch: el registro ya tiene el refresh nuevo y timestamps
	// actualizados; devolvemos esa versión, sin secretos.
	fresh, err := s.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		fresh = user
	}

	log.Info("login ok", logger.UserID(user.ID), logger.Username(user.Username))
	return &LoginResult{
		User:         fresh.Sanitized(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
