package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError — единая точка: apperr → статус, тело {"error": ...}
func writeError(w http.ResponseWriter, zl *logger.ZapLogger, err error) {
	status := apperr.HTTPStatus(err)
	if zl != nil && status >= 500 {
		zl.Log(logger.LogEntry{Level: "error", Message: "request failed", Error: err})
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
