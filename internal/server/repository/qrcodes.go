package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// QRCodesRepository реализует доступ к таблице qr_codes.
// Каждый запрос ограничен владельцем записи.
type QRCodesRepository struct {
	db *sql.DB
}

// NewQRCodesRepository создаёт новый экземпляр QRCodesRepository.
func NewQRCodesRepository(db *sql.DB) *QRCodesRepository {
	return &QRCodesRepository{db: db}
}

// Create сохраняет новую запись и возвращает её целиком.
func (r *QRCodesRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	url string,
	imageURL string,
) (models.QRCode, error) {

	q := models.QRCode{
		UserID:   userID,
		Name:     name,
		URL:      url,
		ImageURL: imageURL,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO qr_codes (user_id, name, url, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`,
		userID,
		name,
		url,
		imageURL,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return models.QRCode{}, serr.Internal(err)
	}

	return q, nil
}

// ListByUser возвращает записи владельца, новые первыми.
func (r *QRCodesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QRCode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, url, image_url, created_at, updated_at
		FROM qr_codes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, serr.Internal(err)
	}
	defer rows.Close()

	out := make([]models.QRCode, 0)
	for rows.Next() {
		var q models.QRCode
		if err := rows.Scan(
			&q.ID,
			&q.UserID,
			&q.Name,
			&q.URL,
			&q.ImageURL,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, serr.Internal(err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Internal(err)
	}

	return out, nil
}

// DeleteOwned удаляет запись id, если её владелец userID.
// false означает, что такой записи у владельца нет.
func (r *QRCodesRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM qr_codes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, serr.Internal(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, serr.Internal(err)
	}

	return n > 0, nil
}
