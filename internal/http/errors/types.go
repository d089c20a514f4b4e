// Package errors define el envelope estándar de error de la API.
// Todo fallo visible lleva (statusCode, message, errors[], success:false);
// la causa interna viaja en Err solo para logs, nunca se serializa.
package errors

import (
	"fmt"
	"net/http"
)

type AppError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	// Success queda fijo en false desde la construcción.
	Success bool  `json:"success"`
	Err     error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New crea un AppError con el status y mensaje dados.
func New(status int, message string) *AppError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &AppError{StatusCode: status, Message: message}
}

// Constructores por clasificación (la taxonomía completa del dominio).

func BadRequest(msg string) *AppError    { return New(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *AppError  { return New(http.StatusUnauthorized, msg) }
func NotFound(msg string) *AppError      { return New(http.StatusNotFound, msg) }
func Conflict(msg string) *AppError      { return New(http.StatusConflict, msg) }
func InternalError(msg string) *AppError { return New(http.StatusInternalServerError, msg) }

// Genéricos reutilizados por middlewares y parsing.
var (
	ErrInvalidJSON         = BadRequest("invalid request body")
	ErrMethodNotAllowed    = New(http.StatusMethodNotAllowed, "method not allowed")
	ErrInternalServerError = InternalError("internal server error")
)

// WithErrors devuelve una COPIA con la lista de detalles (no muta los
// errores predeclarados).
func (e *AppError) WithErrors(details ...string) *AppError {
	cp := *e
	cp.Errors = append([]string(nil), details...)
	return &cp
}

// WithCause devuelve una COPIA con la causa original adjunta (solo logs).
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// FromError convierte cualquier error en AppError. Lo que no está
// clasificado se vuelve 500 genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}
