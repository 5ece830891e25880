package handlers

import (
	"net/http"

	"kanban/internal/logger"
	"kanban/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError writes the response for a service business error and
// reports whether err was one.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)
	logger.Warn("HTTP: business error",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	if statusCode == http.StatusNotFound {
		responseEmpty(w, statusCode)
		return true
	}

	responseWithError(w, statusCode, businessErr.Message)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
