package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

const testKey = "secret"

func jwtConfig(now time.Time) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "qrkeeper",
		SigningKey: testKey,
		AccessTTL:  7 * 24 * time.Hour,
		Now:        func() time.Time { return now },
	}
}

// Вспомогательная функция для JWT старого формата (userId вместо id)
func makeLegacyToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": userID,
		"email":  "old@x.com",
		"iss":    "qrkeeper",
		"exp":    exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	cfg := jwtConfig(time.Now())
	v := middleware.NewJWTVerifier(cfg, nil)

	userID := uuid.New()
	token, err := crypto.NewAccessToken(userID.String(), "alice@x.com", cfg)
	require.NoError(t, err)

	called := false
	handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		id, ok := middleware.IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, userID.String(), id.UserID)
		require.Equal(t, "alice@x.com", id.Email)
		require.False(t, id.ExpiresAt.IsZero())

		w.WriteHeader(http.StatusOK)
	}))

	rr := serve(handler, "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)

	// токен без префикса тоже принимается
	rr = serve(handler, token)
	require.Equal(t, http.StatusOK, rr.Code)
}

// Нет заголовка, пустой Bearer, мусор вместо токена
func TestAuthMiddleware_Rejects(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtConfig(time.Now()), nil)

	handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	cases := []struct {
		name   string
		header string
		msg    string
	}{
		{"no header", "", serr.ErrAuthHeaderMissing.Error()},
		{"bearer without token", "Bearer ", serr.ErrTokenMissing.Error()},
		{"garbage", "Bearer not.a.jwt", serr.ErrTokenInvalid.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(handler, tc.header)
			require.Equal(t, http.StatusUnauthorized, rr.Code)

			body := decodeError(t, rr)
			require.False(t, body.Success)
			require.Equal(t, tc.msg, body.Message)
		})
	}
}

// принят через секунду, отклонён через 7 дней и секунду
func TestAuthMiddleware_ValidityWindow(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := crypto.NewAccessToken(uuid.NewString(), "alice@x.com", jwtConfig(issued))
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	early := middleware.NewJWTVerifier(jwtConfig(issued.Add(time.Second)), nil)
	require.Equal(t, http.StatusOK, serve(early.AuthMiddleware()(ok), "Bearer "+token).Code)

	late := middleware.NewJWTVerifier(jwtConfig(issued.Add(7*24*time.Hour+time.Second)), nil)
	rr := serve(late.AuthMiddleware()(ok), "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, serr.ErrTokenInvalid.Error(), decodeError(t, rr).Message)
}

// подпись другим ключом
func TestAuthMiddleware_WrongKey(t *testing.T) {
	cfg := jwtConfig(time.Now())
	other := cfg
	other.SigningKey = "another"

	token, err := crypto.NewAccessToken(uuid.NewString(), "a@x.com", other)
	require.NoError(t, err)

	v := middleware.NewJWTVerifier(cfg, nil)
	rr := serve(v.AuthMiddleware()(http.NotFoundHandler()), "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

// старые токены с userId
func TestAuthMiddleware_LegacyUserIDClaim(t *testing.T) {
	now := time.Now()
	v := middleware.NewJWTVerifier(jwtConfig(now), nil)

	userID := uuid.NewString()
	token := makeLegacyToken(t, userID, now.Add(time.Hour))

	handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, userID, id.UserID)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.Equal(t, http.StatusNoContent, serve(handler, "Bearer "+token).Code)
}

// обработчик ошибок подставляется снаружи
func TestAuthMiddleware_CustomErrorHandler(t *testing.T) {
	var got error
	v := middleware.NewJWTVerifier(jwtConfig(time.Now()), func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	})

	rr := serve(v.AuthMiddleware()(http.NotFoundHandler()), "")
	require.Equal(t, http.StatusTeapot, rr.Code)
	require.ErrorIs(t, got, serr.ErrAuthHeaderMissing)
}

// опциональный режим никогда не обрывает запрос
func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := jwtConfig(time.Now())
	v := middleware.NewJWTVerifier(cfg, nil)

	userID := uuid.NewString()
	token, err := crypto.NewAccessToken(userID, "a@x.com", cfg)
	require.NoError(t, err)

	expired, err := crypto.NewAccessToken(userID, "a@x.com", jwtConfig(time.Now().Add(-8*24*time.Hour)))
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		wantID  string
		authned bool
	}{
		{"valid", "Bearer " + token, userID, true},
		{"no header", "", "", false},
		{"garbage", "Bearer xxx", "", false},
		{"expired", "Bearer " + expired, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := v.OptionalAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				id, ok := middleware.IdentityFromContext(r.Context())
				require.Equal(t, tc.authned, ok)
				if ok {
					require.Equal(t, tc.wantID, id.UserID)
				}
				w.WriteHeader(http.StatusOK)
			}))

			rr := serve(handler, tc.header)
			require.True(t, called)
			require.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"Bearer abc":      "abc",
		"bearer   abc  ":  "abc",
		"Bearer":          "",
		"Bearer   ":       "",
		"abc.def.ghi":     "abc.def.ghi",
		"BearerToken.x.y": "BearerToken.x.y",
	}

	for in, want := range cases {
		require.Equal(t, want, middleware.ExtractBearer(in), "input %q", in)
	}
}
