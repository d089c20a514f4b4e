package helpers

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SaveUploadedFile copia un archivo del multipart form a un temporal en
// dir y devuelve su path. El caller es dueño del archivo y lo borra al
// terminar el request.
func SaveUploadedFile(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	dst, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write temp: %w", err)
	}
	return dst.Name(), nil
}

// RemoveIfExists borra silenciosamente un temporal (cleanup best-effort).
func RemoveIfExists(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
