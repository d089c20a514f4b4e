// Package auth contiene los DTOs de los endpoints de cuenta.
package auth

import "github.com/dropDatabas3/accountd/internal/store/core"

// RegisterInput es lo que el controller arma desde el multipart form:
// campos de texto + paths locales temporales de los archivos subidos.
type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string

	// AvatarLocalPath es obligatorio; CoverImageLocalPath opcional.
	AvatarLocalPath     string
	CoverImageLocalPath string
}

// RegisterResponse devuelve la identidad ya sin secretos.
type RegisterResponse struct {
	User *core.User `json:"user"`
}
