package core

import "context"

// Repository es el contrato mínimo de persistencia de usuarios.
// Los drivers (mongo, pg) lo implementan; los services solo dependen
// de esta interfaz.
type Repository interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// GetUserByIdentifier busca por email O username (case-insensitive,
	// el caller normaliza con trim+lower). ErrNotFound si no existe.
	GetUserByIdentifier(ctx context.Context, identifier string) (*User, error)

	// GetUserByID busca por id. ErrNotFound si no existe.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// CreateUser inserta el registro. ErrConflict si username o email
	// ya existen (índices únicos case-insensitive).
	CreateUser(ctx context.Context, u *User) error

	// UpdateRefreshToken reemplaza CurrentRefreshToken en una única
	// operación de update (token vacío = cerrar sesión). Es el punto de
	// atomicidad del que depende la rotación: dos rotaciones concurrentes
	// con el mismo token dejan exactamente una ganadora.
	UpdateRefreshToken(ctx context.Context, userID, token string) error
}
