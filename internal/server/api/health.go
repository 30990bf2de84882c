package api

import (
	"net/http"
	"time"

	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// Health — проверка, что сервер жив. БД не трогает.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, shared.HealthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC(),
	})
}
