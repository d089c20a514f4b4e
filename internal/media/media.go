// Package media habla con el servicio remoto de hosting de imágenes:
// recibe un path local y devuelve la URL pública del asset.
package media

import (
	"context"
	"errors"
)

// ErrUploadFailed cubre cualquier fallo del colaborador remoto. El caller
// decide la clasificación (para el avatar requerido es un 400).
var ErrUploadFailed = errors.New("media: upload failed")

// Asset es la respuesta mínima del servicio de upload.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Uploader sube un archivo local y devuelve el asset hosteado.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
}
