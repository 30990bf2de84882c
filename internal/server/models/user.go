// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public возвращает то, что можно отдать клиенту (без хэша пароля).
func (u User) Public() shared.User {
	return shared.User{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
