// Package auth implementa la lógica de cuenta: registro, login, logout
// y rotación de refresh tokens. Los controllers solo traducen HTTP a
// estas operaciones y mapean los errores sentinela a status codes.
package auth

import (
	jwtx "github.com/dropDatabas3/accountd/internal/jwt"
	"github.com/dropDatabas3/accountd/internal/media"
	"github.com/dropDatabas3/accountd/internal/security/password"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// Deps agrupa los colaboradores que comparten los services del paquete.
type Deps struct {
	Repo       core.Repository
	Uploader   media.Uploader
	Issuer     *jwtx.Issuer
	HashParams password.Params
}
