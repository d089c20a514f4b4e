package auth

import (
	"context"
	"fmt"

	jwtx "github.com/dropDatabas3/accountd/internal/jwt"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// TokenService emite y rota los pares access/refresh. Es el dueño de la
// regla de sesión única: cada emisión pisa el refresh token guardado, así
// que el último par emitido es el único válido.
type TokenService interface {
	Issue(ctx context.Context, user *core.User) (*TokenPair, error)
	Rotate(ctx context.Context, presented string) (*TokenPair, error)
}

// TokenPair es el resultado de una emisión o rotación.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service errors
var (
	ErrTokenIssueFailed    = fmt.Errorf("token generation failed")
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token")
	ErrRefreshTokenUsed    = fmt.Errorf("refresh token is expired or used")
	ErrRefreshTokenMissing = fmt.Errorf("unauthorized request")
)

type tokenService struct {
	repo   core.Repository
	issuer *jwtx.Issuer
}

// NewTokenService creates a new TokenService.
func NewTokenService(deps Deps) TokenService {
	return &tokenService{repo: deps.Repo, issuer: deps.Issuer}
}

// Issue firma ambos tokens y persiste el refresh en el registro del
// usuario. Si la persistencia falla el par NO queda emitido: un refresh
// no guardado jamás pasaría la comparación de Rotate.
func (s *tokenService) Issue(ctx context.Context, user *core.User) (*TokenPair, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.token"),
		logger.Op("Issue"),
	)

	access, _, err := s.issuer.SignAccess(user.ID, user.Username)
	if err != nil {
		log.Error("sign access token", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	refresh, _, err := s.issuer.SignRefresh(user.ID)
	if err != nil {
		log.Error("sign refresh token", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		log.Error("persist refresh token", logger.UserID(user.ID), logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate valida el refresh presentado y emite un par nuevo. La
// comparación exacta contra el token guardado es lo que invalida
// cualquier refresh anterior: un token ya rotado (o posterior a un
// logout) no coincide y se rechaza como usado.
func (s *tokenService) Rotate(ctx context.Context, presented string) (*TokenPair, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.token"),
		logger.Op("Rotate"),
	)

	claims, err := s.issuer.ParseRefresh(presented)
	if err != nil {
		log.Warn("refresh token rejected", logger.Err(err))
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		// Usuario borrado (o id inventado): mismo mensaje que una firma
		// inválida para no filtrar existencia.
		log.Warn("refresh token subject not found", logger.UserID(claims.Subject))
		return nil, ErrInvalidRefreshToken
	}

	if presented != user.CurrentRefreshToken {
		log.Warn("stale refresh token presented", logger.UserID(user.ID))
		return nil, ErrRefreshTokenUsed
	}

	return s.Issue(ctx, user)
}
