package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/cli"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/utils"
)

const (
	testEmail    = "ivan@example.com"
	testPassword = "StrongPass123"
	testToken    = "tok-1"
	testUserID   = "u1"
)

// fakePNG — содержимое картинки, которую отдаёт фейковый сервер.
var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

// fakeServer — минимальная реализация /api для проверки команд.
type fakeServer struct {
	*httptest.Server

	mu    sync.Mutex
	seq   int
	items []shared.QRCode
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req shared.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "taken@example.com" {
			writeJSON(w, http.StatusConflict, shared.ErrorResponse{Message: "user already exists"})
			return
		}
		writeJSON(w, http.StatusCreated, shared.AuthResponse{
			Success: true,
			User:    shared.User{ID: testUserID, Username: req.Username, Email: req.Email},
			Token:   testToken,
		})
	})

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req shared.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != testEmail || req.Password != testPassword {
			writeJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Message: "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, shared.AuthResponse{
			Success: true,
			User:    shared.User{ID: testUserID, Username: "ivan", Email: req.Email},
			Token:   testToken,
		})
	})

	mux.HandleFunc("GET /api/auth/me", fs.guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, shared.MeResponse{
			Success:   true,
			User:      shared.MeUser{ID: testUserID, Email: testEmail},
			ExpiresAt: time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC),
		})
	}))

	mux.HandleFunc("POST /api/qr/generate", fs.guard(func(w http.ResponseWriter, r *http.Request) {
		var req shared.GenerateQRRequest
		json.NewDecoder(r.Body).Decode(&req)
		if strings.TrimSpace(req.URL) == "" {
			writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Message: "url required"})
			return
		}
		name := req.Name
		if name == "" {
			name = "Untitled QR"
		}

		fs.mu.Lock()
		fs.seq++
		now := time.Now().UTC().Add(time.Duration(fs.seq) * time.Second)
		q := shared.QRCode{
			ID:        fmt.Sprintf("q%d", fs.seq),
			UserID:    testUserID,
			Name:      name,
			URL:       req.URL,
			ImageURL:  utils.EncodePNGDataURL(fakePNG),
			CreatedAt: now,
			UpdatedAt: now,
		}
		fs.items = append([]shared.QRCode{q}, fs.items...)
		fs.mu.Unlock()

		writeJSON(w, http.StatusCreated, q)
	}))

	mux.HandleFunc("POST /api/qr/preview", func(w http.ResponseWriter, r *http.Request) {
		var req shared.GenerateQRRequest
		json.NewDecoder(r.Body).Decode(&req)
		resp := shared.PreviewQRResponse{Success: true, URL: req.URL, ImageURL: utils.EncodePNGDataURL(fakePNG)}
		if r.Header.Get("Authorization") == "Bearer "+testToken {
			resp.OwnerID = testUserID
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("GET /api/qr/history", fs.guard(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		items := append([]shared.QRCode{}, fs.items...)
		writeJSON(w, http.StatusOK, items)
	}))

	mux.HandleFunc("DELETE /api/qr/{id}", fs.guard(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		fs.mu.Lock()
		defer fs.mu.Unlock()
		for i, q := range fs.items {
			if q.ID == id {
				fs.items = append(fs.items[:i], fs.items[i+1:]...)
				writeJSON(w, http.StatusOK, shared.DeleteQRResponse{Success: true, ID: id})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, shared.ErrorResponse{Message: "not found or not authorized"})
	}))

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Message: "invalid or expired token"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// run выполняет root-команду с каталогом конфига dir.
// Пустой server означает, что флаг --server не передаётся.
func run(t *testing.T, server, dir string, args ...string) (string, error) {
	t.Helper()

	root := cli.NewRootCmd("1.0.0", "2026-10-19")

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))

	full := []string{"--config-dir", dir}
	if server != "" {
		full = append(full, "--server", server)
	}
	root.SetArgs(append(full, args...))

	err := root.Execute()
	return out.String(), err
}
