// Package api реализует HTTP-слой сервера qrkeeper.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - единый формат ошибок {success:false, message, error?}.
//
// Маршруты регистрируются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/logger"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse — формат ошибки в ответах API (для swagger).
type ErrorResponse = shared.ErrorResponse

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации;
//   - Production: в проде поле error в ответах не заполняется.
type Handler struct {
	Svc        *service.Services
	Log        *logger.HTTPLogger
	Verifier   *middleware.JWTVerifier
	Production bool
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// Verifier собирается из параметров AuthService, поэтому проверка токенов
// всегда совпадает с их выдачей, а его ошибки пишутся через WriteError.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, production bool) *Handler {
	if log == nil {
		log = logger.NewHTTPLogger()
	}
	h := &Handler{
		Svc:        svc,
		Log:        log,
		Production: production,
	}
	h.Verifier = middleware.NewJWTVerifier(svc.Auth.JWT(), h.WriteError)
	return h
}

// statusFor выбирает HTTP-статус и сообщение для клиента по доменной ошибке.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, serr.ErrBadJSON):
		return http.StatusBadRequest, serr.ErrBadJSON.Error()
	case errors.Is(err, serr.ErrInvalidInput):
		// для Invalid(msg) Error() уже содержит понятное сообщение
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, serr.ErrAlreadyExists):
		return http.StatusConflict, serr.ErrAlreadyExists.Error()
	case errors.Is(err, serr.ErrInvalidCredentials):
		return http.StatusUnauthorized, serr.ErrInvalidCredentials.Error()
	case errors.Is(err, serr.ErrAuthHeaderMissing):
		return http.StatusUnauthorized, serr.ErrAuthHeaderMissing.Error()
	case errors.Is(err, serr.ErrTokenMissing):
		return http.StatusUnauthorized, serr.ErrTokenMissing.Error()
	case errors.Is(err, serr.ErrTokenInvalid):
		return http.StatusUnauthorized, serr.ErrTokenInvalid.Error()
	case errors.Is(err, serr.ErrUnauthorized):
		return http.StatusUnauthorized, serr.ErrUnauthorized.Error()
	case errors.Is(err, serr.ErrNotFound):
		return http.StatusNotFound, serr.ErrNotFound.Error()
	case errors.Is(err, serr.ErrTooManyRequests):
		return http.StatusTooManyRequests, serr.ErrTooManyRequests.Error()
	default:
		return http.StatusInternalServerError, serr.ErrInternal.Error()
	}
}

// WriteError пишет ошибку в едином формате.
//
// Причина ошибки (поле error) попадает в ответ только вне production,
// 500-е всегда логируются.
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
	}

	resp := ErrorResponse{Success: false, Message: msg}
	if !h.Production {
		resp.Error = err.Error()
	}
	WriteJSON(w, status, resp)
}

// WriteJSON — вспомогательная функция вывода JSON ответа.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса в v. Любая ошибка чтения — ErrBadJSON.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return serr.ErrBadJSON
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.Invalid("request body too large")
		}
		return serr.ErrBadJSON
	}
	return nil
}

// identity достаёт личность, которую положил auth middleware.
// nil — анонимный запрос.
func identity(r *http.Request) *models.Identity {
	id, _ := middleware.IdentityFromContext(r.Context())
	return id
}
