package models

import "time"

// User — публичное представление пользователя в HTTP API.
//
// Хэш пароля сюда не попадает никогда: серверная модель с хэшем
// живёт в internal/server/models и наружу не сериализуется.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// QRCode — запись QR-кода пользователя.
//
// ImageURL содержит саму картинку в виде data URL (data:image/png;base64,...),
// отдельного файла нет.
type QRCode struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest — тело запроса POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — тело запроса POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — ответ регистрации и логина.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// MeResponse — ответ GET /api/auth/me: что лежит в предъявленном токене.
type MeResponse struct {
	Success   bool      `json:"success"`
	User      MeUser    `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MeUser — идентичность из токена.
type MeUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GenerateQRRequest — тело запроса POST /api/qr/generate и POST /api/qr/preview.
type GenerateQRRequest struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// PreviewQRResponse — ответ POST /api/qr/preview, запись не сохраняется.
type PreviewQRResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
	OwnerID  string `json:"owner_id,omitempty"`
}

// DeleteQRResponse — ответ DELETE /api/qr/{id}.
type DeleteQRResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// HealthResponse — ответ GET /api/health.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse — единый формат ошибки API.
//
// Error заполняется только вне production окружения.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
