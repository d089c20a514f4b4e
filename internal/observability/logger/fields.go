package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }

func DurationMs(v time.Duration) zap.Field {
	return zap.Int64("duration_ms", v.Milliseconds())
}

// Campos estándar de negocio.

func UserID(v string) zap.Field   { return zap.String("user_id", v) }
func Username(v string) zap.Field { return zap.String("username", v) }

// Layer identifica la capa (controller | service | store | media).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Component nombra el sub-módulo dentro de la capa (ej: "auth.login").
func Component(v string) zap.Field { return zap.String("component", v) }

// Op identifica la operación (ej: "TokenService.Rotate").
func Op(v string) zap.Field { return zap.String("op", v) }

func Err(err error) zap.Field     { return zap.Error(err) }
func Any(k string, v any) zap.Field { return zap.Any(k, v) }
