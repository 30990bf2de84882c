// В этом файле описаны методы клиента для эндпоинтов аутентификации:
// регистрация, вход и информация о текущем токене.
package api

import (
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// Register регистрирует пользователя и сразу возвращает access токен.
func (c *Client) Register(username, email, password string) (shared.AuthResponse, error) {
	var resp shared.AuthResponse
	err := c.PostJSON("/api/auth/register", shared.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя.
//
// Неизвестный email и неверный пароль сервер не различает: оба дают 401.
func (c *Client) Login(email, password string) (shared.AuthResponse, error) {
	var resp shared.AuthResponse
	err := c.PostJSON("/api/auth/login", shared.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me возвращает идентичность, зашитую в accessToken.
func (c *Client) Me(accessToken string) (shared.MeResponse, error) {
	var resp shared.MeResponse
	err := c.GetJSON("/api/auth/me", &resp, accessToken)
	return resp, err
}
