package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// QRCode — запись qr_codes, как она лежит в БД.
type QRCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	URL       string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public переводит запись в формат HTTP API.
func (q QRCode) Public() shared.QRCode {
	return shared.QRCode{
		ID:        q.ID.String(),
		UserID:    q.UserID.String(),
		Name:      q.Name,
		URL:       q.URL,
		ImageURL:  q.ImageURL,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
