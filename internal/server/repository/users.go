// Package repository — доступ к PostgreSQL через database/sql.
// Бизнес-логики здесь нет, только запросы и перевод ошибок драйвера
// в доменные ошибки.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// ExistsByEmailOrUsername сообщает, занят ли email или username.
// Какое именно поле совпало, не раскрывается.
func (r *UsersRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email=$1 OR username=$2)`,
		email, username,
	).Scan(&exists)
	if err != nil {
		return false, serr.Internal(err)
	}

	return exists, nil
}

func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`,
		username, email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, serr.Internal(err)
	}

	return u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, created_at, updated_at
		 FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.Internal(err)
	}

	return u, nil
}
