// Package http реализует маршрутизацию HTTP-слоя сервера qrkeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - подключение проверки JWT access-токенов, лимитов тела и частоты запросов.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - /api/health и публичные эндпоинты аутентификации /api/auth;
//   - /api/qr/preview с необязательным токеном;
//   - группу защищённых JWT эндпоинтов /api/auth/me и /api/qr;
//   - swagger UI на /swagger/*.
//
// cfg может быть nil, тогда лимиты не включаются.
func NewRouter(h *api.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	// паника в хендлере превращается в 500, сервер продолжает работать
	r.Use(chimw.Recoverer)

	var limiter *middleware.RateLimiter
	if cfg != nil {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
		if cfg.Security.RateLimit.Enabled {
			limiter = middleware.NewRateLimiter(cfg.Security.RateLimit, h.WriteError)
		}
	}
	limit := func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware())
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h.WriteError(w, req, serr.ErrNotFound)
	})

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Публичные пути
		r.Group(func(r chi.Router) {
			limit(r)
			r.Post("/auth/register", h.Register)
			r.Post("/auth/login", h.Login)
		})

		// токен необязателен
		r.Group(func(r chi.Router) {
			r.Use(h.Verifier.OptionalAuthMiddleware())
			limit(r)
			r.Post("/qr/preview", h.PreviewQR)
		})

		// защищены пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())
			limit(r)

			r.Get("/auth/me", h.Me)
			r.Post("/qr/generate", h.GenerateQR) // рисуем и сохраняем
			r.Get("/qr/history", h.QRHistory)    // все записи пользователя
			r.Delete("/qr/{id}", h.DeleteQR)     // удаляем только свою запись
		})
	})

	return r
}
