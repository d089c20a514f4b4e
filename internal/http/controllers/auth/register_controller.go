package auth

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/accountd/internal/config"
	dto "github.com/dropDatabas3/accountd/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/accountd/internal/http/errors"
	"github.com/dropDatabas3/accountd/internal/http/helpers"
	svc "github.com/dropDatabas3/accountd/internal/http/services/auth"
	"github.com/dropDatabas3/accountd/internal/observability/logger"
)

// RegisterController handles POST /v1/auth/register (multipart).
type RegisterController struct {
	service   svc.RegisterService
	tempDir   string
	maxUpload int64
}

// NewRegisterController creates a new register controller.
func NewRegisterController(service svc.RegisterService, cfg *config.Config) *RegisterController {
	return &RegisterController{
		service:   service,
		tempDir:   cfg.Media.TempDir,
		maxUpload: cfg.Media.MaxUploadSize,
	}
}

// Register parsea el multipart form (campos de texto + avatar y
// coverImage), guarda los archivos en temp y delega en el service.
// Los temporales se borran siempre al salir.
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUpload)
	if err := r.ParseMultipartForm(c.maxUpload); err != nil {
		httperrors.WriteError(w, httperrors.BadRequest("invalid multipart form"))
		return
	}

	in := dto.RegisterInput{
		FullName: r.FormValue("fullName"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if f, fh, err := r.FormFile("avatar"); err == nil {
		defer f.Close()
		path, err := helpers.SaveUploadedFile(fh, c.tempDir)
		if err != nil {
			log.Error("save avatar temp file", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
			return
		}
		in.AvatarLocalPath = path
		defer helpers.RemoveIfExists(path)
	}
	if f, fh, err := r.FormFile("coverImage"); err == nil {
		defer f.Close()
		path, err := helpers.SaveUploadedFile(fh, c.tempDir)
		if err != nil {
			log.Warn("save cover temp file", logger.Err(err))
		} else {
			in.CoverImageLocalPath = path
			defer helpers.RemoveIfExists(path)
		}
	}

	user, err := c.service.Register(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrRegisterMissingFields):
			httperrors.WriteError(w, httperrors.BadRequest(err.Error()))
		case errors.Is(err, svc.ErrRegisterAvatarRequired):
			httperrors.WriteError(w, httperrors.BadRequest(err.Error()))
		case errors.Is(err, svc.ErrRegisterAvatarUpload):
			httperrors.WriteError(w, httperrors.BadRequest(err.Error()))
		case errors.Is(err, svc.ErrRegisterDuplicate):
			httperrors.WriteError(w, httperrors.Conflict(err.Error()))
		default:
			log.Error("register error", logger.Err(err))
			httperrors.WriteError(w, httperrors.InternalError(svc.ErrRegisterCreateFailed.Error()))
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.RegisterResponse{User: user}, "user registered successfully")
}
