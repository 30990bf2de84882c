// HTTP-хендлеры QR-кодов
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// GenerateQR рисует QR-код и сохраняет запись за текущим пользователем.
//
// @Summary      Generate QR code
// @Description  Renders the url to a PNG data URL and stores the record for the authenticated user.
// @Tags         qr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.GenerateQRRequest true "Generate request"
// @Success      201 {object} models.QRCode
// @Failure      400 {object} models.ErrorResponse "Missing url or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /qr/generate [post]
func (h *Handler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	var req shared.GenerateQRRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	rec, err := h.Svc.QR.Generate(r.Context(), identity(r), req.URL, req.Name)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, rec.Public())
}

// PreviewQR рисует QR-код без сохранения. Токен не обязателен.
//
// @Summary      Preview QR code
// @Description  Renders the url without storing it. A valid token only adds owner_id to the response.
// @Tags         qr
// @Accept       json
// @Produce      json
// @Param        request body models.GenerateQRRequest true "Preview request"
// @Success      200 {object} models.PreviewQRResponse
// @Failure      400 {object} models.ErrorResponse "Missing url or bad JSON"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /qr/preview [post]
func (h *Handler) PreviewQR(w http.ResponseWriter, r *http.Request) {
	var req shared.GenerateQRRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res, err := h.Svc.QR.Preview(r.Context(), identity(r), req.URL)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, shared.PreviewQRResponse{
		Success:  true,
		URL:      res.URL,
		ImageURL: res.ImageURL,
		OwnerID:  res.OwnerID,
	})
}

// QRHistory отдаёт записи текущего пользователя, новые первыми.
//
// @Summary      QR history
// @Description  Returns all QR records of the authenticated user, newest first.
// @Tags         qr
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.QRCode
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /qr/history [get]
func (h *Handler) QRHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.QR.List(r.Context(), identity(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, publicQRCodes(items))
}

// DeleteQR удаляет запись текущего пользователя.
//
// @Summary      Delete QR code
// @Description  Deletes a record owned by the authenticated user.
// @Description  A foreign record and a missing one give the same 404.
// @Tags         qr
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "QR record ID (UUID)"
// @Success      200 {object} models.DeleteQRResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found or not authorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /qr/{id} [delete]
func (h *Handler) DeleteQR(w http.ResponseWriter, r *http.Request) {
	id, err := h.Svc.QR.Delete(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, shared.DeleteQRResponse{Success: true, ID: id.String()})
}

func publicQRCodes(items []models.QRCode) []shared.QRCode {
	out := make([]shared.QRCode, 0, len(items))
	for _, q := range items {
		out = append(out, q.Public())
	}
	return out
}
