package auth

import "github.com/dropDatabas3/accountd/internal/store/core"

// LoginRequest admite email o username como identificador.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse embebe los tokens también en el body: el cliente puede
// usar las cookies o el body, ambos llevan los mismos valores.
type LoginResponse struct {
	User         *core.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}
