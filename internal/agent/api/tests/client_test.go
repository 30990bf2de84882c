package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/api"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

func TestClient_PostJSON_SetsHeaders_AndDecodesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, float64(1), got["a"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, true)

	var resp map[string]any
	require.NoError(t, c.PostJSON("/x", map[string]any{"a": 1}, &resp, "token-1"))
	require.Equal(t, true, resp["ok"])
}

func TestClient_TLSVerifiedByDefault(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	defer srv.Close()

	// самоподписанный сертификат без --insecure не принимается
	c := api.NewClient(srv.URL, false)

	err := c.GetJSON("/x", nil, "")
	require.Error(t, err)

	var apiErr *api.Error
	require.NotErrorAs(t, err, &apiErr)
}

func TestClient_GetJSON_WithoutAuth_DoesNotSetAuthorization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.Header.Get("Authorization"))
		require.Empty(t, r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var resp map[string]any
	require.NoError(t, api.NewClient(srv.URL+"/", false).GetJSON("/x", &resp, ""))
	require.Equal(t, true, resp["ok"])
}

func TestClient_Non2xx_UsesMessageFromErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(shared.ErrorResponse{Success: false, Message: "user already exists"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	err := api.NewClient(srv.URL, false).PostJSON("/x", map[string]string{}, nil, "")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "user already exists", apiErr.Message)
	require.True(t, api.IsStatus(err, http.StatusConflict))
	require.False(t, api.IsStatus(err, http.StatusNotFound))
}

func TestClient_Non2xx_PlainBodyAndEmptyBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("  upstream down \n"))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL, false)

	err := c.GetJSON("/plain", nil, "")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "upstream down", apiErr.Message)

	err = c.GetJSON("/empty", nil, "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "503 Service Unavailable", apiErr.Message)
}

func TestClient_DeleteJSON_204NoContent_ReturnsNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var resp map[string]any
	require.NoError(t, api.NewClient(srv.URL, false).DeleteJSON("/x", &resp, "t"))
	require.Nil(t, resp)
}

func TestClient_EmptyBody_EOFIsOK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var resp map[string]any
	require.NoError(t, api.NewClient(srv.URL, false).GetJSON("/x", &resp, ""))
}

func TestClient_PostJSON_NilRequest_DoesNotSetContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		require.Empty(t, b)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	require.NoError(t, api.NewClient(srv.URL, false).PostJSON("/x", nil, nil, ""))
}

func TestClient_PostJSON_BadRequestEncoding_ReturnsError(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:1", false)

	err := c.PostJSON("/x", map[string]any{"ch": make(chan int)}, nil, "")
	require.Error(t, err)
}
