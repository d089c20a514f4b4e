package core

import "time"

// User es el registro de identidad persistido. PasswordHash y
// CurrentRefreshToken son secretos: nunca salen en una respuesta HTTP
// (ver Sanitized).
type User struct {
	ID                  string    `json:"id" bson:"_id"`
	FullName            string    `json:"fullName" bson:"fullName"`
	Email               string    `json:"email" bson:"email"`
	Username            string    `json:"username" bson:"username"`
	PasswordHash        string    `json:"-" bson:"passwordHash"`
	CurrentRefreshToken string    `json:"-" bson:"currentRefreshToken,omitempty"`
	AvatarURL           string    `json:"avatar" bson:"avatar"`
	CoverImageURL       string    `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Sanitized devuelve una copia sin secretos. Es la única forma del usuario
// que puede embeberse en una respuesta.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	cp.CurrentRefreshToken = ""
	return &cp
}

// HasActiveSession indica si el usuario tiene un refresh token vigente.
// CurrentRefreshToken vacío significa NO_SESSION.
func (u *User) HasActiveSession() bool {
	return u != nil && u.CurrentRefreshToken != ""
}
