// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// identityKey — ключ контекста, под которым хранится личность пользователя.
const identityKey ctxKey = "identity"

// ErrorHandler пишет ответ с ошибкой. Роутер подставляет сюда
// обработчик api слоя, чтобы формат ошибок был один на весь сервер.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// JWTVerifier инкапсулирует параметры проверки JWT access-токенов.
//
// Используется в HTTP middleware для:
//   - проверки подписи и срока действия токена
//   - валидации issuer и audience
//   - сборки models.Identity из claims
type JWTVerifier struct {
	cfg     crypto.JWTConfig
	onError ErrorHandler
}

// NewJWTVerifier создаёт новый JWTVerifier. onError может быть nil,
// тогда ошибка пишется простым JSON без поля error.
func NewJWTVerifier(cfg crypto.JWTConfig, onError ErrorHandler) *JWTVerifier {
	if onError == nil {
		onError = writePlainError
	}
	return &JWTVerifier{cfg: cfg, onError: onError}
}

// IdentityFromContext извлекает личность аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - identity
//   - false, если пользователь не аутентифицирован
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok && id != nil
}

// WithIdentity кладёт identity в контекст и отмечает пользователя
// для лога запроса.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	if id != nil {
		annotateUser(ctx, id.UserID)
	}
	return context.WithValue(ctx, identityKey, id)
}

// Identify разбирает заголовок Authorization и проверяет токен.
//
// Ошибки:
//   - ErrAuthHeaderMissing — заголовка нет
//   - ErrTokenMissing — после Bearer пусто
//   - ErrTokenInvalid — подпись, срок, iss/aud или subject не прошли проверку
func (v *JWTVerifier) Identify(header string) (*models.Identity, error) {
	if strings.TrimSpace(header) == "" {
		return nil, serr.ErrAuthHeaderMissing
	}

	tokenStr := ExtractBearer(header)
	if tokenStr == "" {
		return nil, serr.ErrTokenMissing
	}

	claims, err := crypto.ParseAccessToken(tokenStr, v.cfg)
	if err != nil {
		return nil, serr.ErrTokenInvalid
	}

	id := &models.Identity{
		UserID: claims.SubjectID(),
		Email:  claims.Email,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// AuthMiddleware возвращает строгий middleware: без валидного токена
// запрос дальше не идёт, клиент получает 401.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Identify(r.Header.Get("Authorization"))
			if err != nil {
				v.onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuthMiddleware никогда не прерывает запрос. Если токен валиден,
// identity попадает в контекст, иначе обработчик видит анонимный запрос.
func (v *JWTVerifier) OptionalAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Identify(r.Header.Get("Authorization"))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Без префикса Bearer всё значение заголовка считается токеном.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	if len(h) >= len("Bearer") && strings.EqualFold(h[:len("Bearer")], "Bearer") {
		rest := h[len("Bearer"):]
		if rest == "" {
			return ""
		}
		if rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return h
}

func writePlainError(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, serr.ErrTooManyRequests) {
		status = http.StatusTooManyRequests
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(shared.ErrorResponse{Success: false, Message: err.Error()})
}
