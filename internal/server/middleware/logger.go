// Логирование HTTP-запросов
package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/logger"
)

// ResponseWriter запоминает статус и размер ответа для лога.
type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(status int) {
	if w.Status == 0 {
		w.Status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.Size += n
	return n, err
}

// requestMeta заполняется ниже по цепочке и читается после ответа.
type requestMeta struct {
	userID string
}

const metaKey ctxKey = "request_meta"

// annotateUser отмечает пользователя запроса для строки лога.
func annotateUser(ctx context.Context, userID string) {
	if m, ok := ctx.Value(metaKey).(*requestMeta); ok {
		m.userID = userID
	}
}

// LoggerMiddleware пишет строку на каждый запрос: метод, путь, статус,
// размер ответа, длительность, request id и пользователя, если токен
// был проверен. nil — логгер по умолчанию.
func LoggerMiddleware(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewHTTPLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			meta := &requestMeta{}
			wr := &ResponseWriter{ResponseWriter: w}

			next.ServeHTTP(wr, r.WithContext(context.WithValue(r.Context(), metaKey, meta)))

			status := wr.Status
			if status == 0 {
				status = http.StatusOK
			}
			log.LogRequest(logger.RequestLog{
				Method:    r.Method,
				URI:       r.RequestURI,
				Status:    status,
				Size:      wr.Size,
				Duration:  time.Since(start),
				RequestID: chimw.GetReqID(r.Context()),
				UserID:    meta.userID,
			})
		})
	}
}
