package helpers

import (
	"encoding/json"
	"net/http"
)

// apiResponse es el envelope de éxito: espejo del de error pero con
// success:true y data en lugar de errors.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// WriteJSON escribe una respuesta exitosa con el envelope estándar.
func WriteJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}
