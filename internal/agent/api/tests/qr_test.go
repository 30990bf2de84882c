package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/api"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

const fakeImage = "data:image/png;base64,AAAA"

func TestClient_Generate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qr/generate", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req shared.GenerateQRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "https://example.com", req.URL)
		require.Equal(t, "site", req.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(shared.QRCode{ID: "q1", UserID: "u1", Name: req.Name, URL: req.URL, ImageURL: fakeImage})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := api.NewClient(srv.URL, false).Generate("tok", "https://example.com", "site")
	require.NoError(t, err)
	require.Equal(t, "q1", got.ID)
	require.Equal(t, fakeImage, got.ImageURL)
}

func TestClient_Preview_Anonymous(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qr/preview", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))

		// name в превью не отправляется
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.NotContains(t, raw, "name")

		json.NewEncoder(w).Encode(shared.PreviewQRResponse{Success: true, URL: "https://example.com", ImageURL: fakeImage})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := api.NewClient(srv.URL, false).Preview("", "https://example.com")
	require.NoError(t, err)
	require.True(t, got.Success)
	require.Empty(t, got.OwnerID)
}

func TestClient_History(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qr/history", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`[{"id":"q2","name":"b"},{"id":"q1","name":"a"}]`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := api.NewClient(srv.URL, false).History("tok")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "q2", got[0].ID)
}

func TestClient_History_EmptyBody_ReturnsEmptySlice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qr/history", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := api.NewClient(srv.URL, false).History("tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestClient_Delete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qr/q1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(shared.DeleteQRResponse{Success: true, ID: "q1"})
	})
	mux.HandleFunc("/api/qr/foreign", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(shared.ErrorResponse{Message: "not found or not authorized"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, false)

	got, err := c.Delete("tok", "q1")
	require.NoError(t, err)
	require.Equal(t, "q1", got.ID)

	_, err = c.Delete("tok", "foreign")
	require.True(t, api.IsStatus(err, http.StatusNotFound))
}
