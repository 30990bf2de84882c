package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

const fakeImage = "data:image/png;base64,AAAA"

func asUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &models.Identity{UserID: userID.String()}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_GenerateQR_Created(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	owner := uuid.New()
	recID := uuid.New()
	now := time.Now()

	d.renderer.EXPECT().Render("https://example.com").Return(fakeImage, nil)
	d.qrs.EXPECT().
		Create(gomock.Any(), owner, "Untitled QR", "https://example.com", fakeImage).
		Return(models.QRCode{
			ID: recID, UserID: owner, Name: "Untitled QR", URL: "https://example.com",
			ImageURL: fakeImage, CreatedAt: now, UpdatedAt: now,
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/qr/generate",
		jsonBody(t, shared.GenerateQRRequest{URL: " https://example.com "}))
	rec := httptest.NewRecorder()

	h.GenerateQR(rec, asUser(req, owner))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp shared.QRCode
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, recID.String(), resp.ID)
	require.Equal(t, owner.String(), resp.UserID)
	require.Equal(t, fakeImage, resp.ImageURL)
}

func TestHandler_GenerateQR_MissingURL(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/qr/generate", bytes.NewBufferString(`{"name":"x"}`))
	rec := httptest.NewRecorder()

	// даже без identity ошибка — про url
	h.GenerateQR(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "url required", decodeErr(t, rec).Message)
}

func TestHandler_PreviewQR_Anonymous(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	d.renderer.EXPECT().Render("https://example.com").Return(fakeImage, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/qr/preview",
		jsonBody(t, shared.GenerateQRRequest{URL: "https://example.com"}))
	rec := httptest.NewRecorder()

	h.PreviewQR(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp shared.PreviewQRResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Empty(t, resp.OwnerID)
	require.Equal(t, fakeImage, resp.ImageURL)
}

func TestHandler_QRHistory(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	owner := uuid.New()
	items := []models.QRCode{
		{ID: uuid.New(), UserID: owner, Name: "b"},
		{ID: uuid.New(), UserID: owner, Name: "a"},
	}
	d.qrs.EXPECT().ListByUser(gomock.Any(), owner).Return(items, nil)

	rec := httptest.NewRecorder()
	h.QRHistory(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/qr/history", nil), owner))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []shared.QRCode
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	require.Equal(t, "b", resp[0].Name)
}

// пустая история — [] а не null
func TestHandler_QRHistory_Empty(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	owner := uuid.New()
	d.qrs.EXPECT().ListByUser(gomock.Any(), owner).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.QRHistory(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/qr/history", nil), owner))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_DeleteQR(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	owner := uuid.New()
	recID := uuid.New()

	d.qrs.EXPECT().DeleteOwned(gomock.Any(), recID, owner).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/qr/"+recID.String(), nil)
	req = withURLParam(asUser(req, owner), "id", recID.String())
	rec := httptest.NewRecorder()

	h.DeleteQR(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp shared.DeleteQRResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, recID.String(), resp.ID)
}

func TestHandler_DeleteQR_NotFound(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t, false)

	owner := uuid.New()
	recID := uuid.New()

	d.qrs.EXPECT().DeleteOwned(gomock.Any(), recID, owner).Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/qr/"+recID.String(), nil)
	req = withURLParam(asUser(req, owner), "id", recID.String())
	rec := httptest.NewRecorder()

	h.DeleteQR(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, serr.ErrNotFound.Error(), decodeErr(t, rec).Message)
}
