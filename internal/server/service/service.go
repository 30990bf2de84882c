// Package service содержит бизнес-логику приложения (qrkeeper).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
//
// Сервисы не знают про HTTP: каждая операция возвращает либо результат,
// либо одну из доменных ошибок internal/shared/errors, а статус по ней
// выбирает api слой.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users   UsersRepo
	QRCodes QRCodesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth *AuthService
	QR   *QRService
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories, hasher crypto.PasswordHasher, renderer Renderer, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.Users, hasher, cfg),
		QR:   NewQRService(repos.QRCodes, renderer, cfg.QR),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// QRCodesRepo — репозиторий QR-кодов. Все запросы отфильтрованы по владельцу.
type QRCodesRepo interface {
	Create(ctx context.Context, userID uuid.UUID, name, url, imageURL string) (models.QRCode, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QRCode, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// Renderer — превращает строку в картинку (data URL).
type Renderer interface {
	Render(content string) (string, error)
}
