package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError serializa el envelope. errors[] siempre presente (aunque
// vacío) para que los clientes no tengan que chequear null.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	out := *appErr
	if out.Errors == nil {
		out.Errors = []string{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(out.StatusCode)
	_ = json.NewEncoder(w).Encode(out)
}
