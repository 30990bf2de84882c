package models

import "time"

// Identity — нормализованная личность из access-токена.
//
// Собирается один раз в auth middleware, дальше сервисы видят только её,
// а не сырые claims.
type Identity struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
