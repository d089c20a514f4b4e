package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	dto "github.com/dropDatabas3/accountd/internal/http/dto/auth"
	"github.com/dropDatabas3/accountd/internal/media"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
	"github.com/dropDatabas3/accountd/internal/security/password"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// RegisterService crea identidades nuevas.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterInput) (*core.User, error)
}

// Service errors
var (
	ErrRegisterMissingFields  = fmt.Errorf("all fields are required")
	ErrRegisterDuplicate      = fmt.Errorf("user with email or username already exists")
	ErrRegisterAvatarRequired = fmt.Errorf("avatar file is required")
	ErrRegisterAvatarUpload   = fmt.Errorf("error while uploading avatar")
	ErrRegisterCreateFailed   = fmt.Errorf("something went wrong while registering the user")
)

type registerService struct {
	repo       core.Repository
	uploader   media.Uploader
	hashParams password.Params
}

// NewRegisterService creates a new RegisterService.
func NewRegisterService(deps Deps) RegisterService {
	return &registerService{
		repo:       deps.Repo,
		uploader:   deps.Uploader,
		hashParams: deps.HashParams,
	}
}

// Register valida, chequea duplicados, sube los assets, hashea el
// password y persiste. El avatar es obligatorio; la portada es best
// effort (si falla queda vacía y el registro sigue).
func (s *registerService) Register(ctx context.Context, in dto.RegisterInput) (*core.User, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if fullName == "" || email == "" || username == "" || in.Password == "" {
		return nil, ErrRegisterMissingFields
	}

	// Chequeo de duplicados por ambos identificadores, antes que el
	// avatar: un registro repetido responde conflicto aunque además le
	// falte el archivo. El índice único del store es el backstop real
	// contra la carrera insert-insert.
	for _, ident := range []string{email, username} {
		if _, err := s.repo.GetUserByIdentifier(ctx, ident); err == nil {
			return nil, ErrRegisterDuplicate
		} else if !errors.Is(err, core.ErrNotFound) {
			log.Error("duplicate lookup failed", logger.Err(err))
			return nil, ErrRegisterCreateFailed
		}
	}

	if in.AvatarLocalPath == "" {
		return nil, ErrRegisterAvatarRequired
	}

	avatarURL, coverURL, err := s.uploadAssets(ctx, in.AvatarLocalPath, in.CoverImageLocalPath)
	if err != nil {
		log.Warn("avatar upload failed", logger.Err(err))
		return nil, ErrRegisterAvatarUpload
	}

	hash, err := password.Hash(s.hashParams, in.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, ErrRegisterCreateFailed
	}

	now := time.Now().UTC()
	user := &core.User{
		ID:            "usr_" + uuid.NewString(),
		FullName:      fullName,
		Email:         email,
		Username:      username,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrRegisterDuplicate
		}
		log.Error("create user failed", logger.Err(err))
		return nil, ErrRegisterCreateFailed
	}

	// Confirmamos contra el store lo que quedó persistido.
	created, err := s.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		log.Error("re-fetch after create failed", logger.UserID(user.ID), logger.Err(err))
		return nil, ErrRegisterCreateFailed
	}

	log.Info("user registered", logger.UserID(created.ID), logger.Username(created.Username))
	return created.Sanitized(), nil
}

// uploadAssets sube avatar y portada en paralelo. Solo el fallo del
// avatar es fatal.
func (s *registerService) uploadAssets(ctx context.Context, avatarPath, coverPath string) (string, string, error) {
	var avatarURL, coverURL string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		asset, err := s.uploader.Upload(gctx, avatarPath)
		if err != nil {
			return err
		}
		avatarURL = asset.URL
		return nil
	})
	if coverPath != "" {
		g.Go(func() error {
			asset, err := s.uploader.Upload(gctx, coverPath)
			if err != nil {
				logger.From(ctx).Warn("cover image upload failed", logger.Err(err))
				return nil
			}
			coverURL = asset.URL
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return avatarURL, coverURL, nil
}
