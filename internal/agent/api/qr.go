package api

import (
	"net/url"

	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// Generate рендерит QR-код на сервере и сохраняет его в историю пользователя.
//
//	POST /api/qr/generate
//
// Пустой name сервер заменяет на имя по умолчанию.
func (c *Client) Generate(accessToken, targetURL, name string) (shared.QRCode, error) {
	var resp shared.QRCode
	err := c.PostJSON("/api/qr/generate", shared.GenerateQRRequest{URL: targetURL, Name: name}, &resp, accessToken)
	return resp, err
}

// Preview рендерит QR-код без сохранения.
//
//	POST /api/qr/preview
//
// accessToken может быть пустым, тогда в ответе нет owner_id.
func (c *Client) Preview(accessToken, targetURL string) (shared.PreviewQRResponse, error) {
	var resp shared.PreviewQRResponse
	err := c.PostJSON("/api/qr/preview", shared.GenerateQRRequest{URL: targetURL}, &resp, accessToken)
	return resp, err
}

// History загружает все записи пользователя, новые первыми.
//
//	GET /api/qr/history
func (c *Client) History(accessToken string) ([]shared.QRCode, error) {
	resp := []shared.QRCode{}
	err := c.GetJSON("/api/qr/history", &resp, accessToken)
	return resp, err
}

// Delete удаляет запись пользователя по ID.
//
//	DELETE /api/qr/{id}
//
// Чужая и несуществующая запись дают одинаковый 404.
func (c *Client) Delete(accessToken, id string) (shared.DeleteQRResponse, error) {
	var resp shared.DeleteQRResponse
	err := c.DeleteJSON("/api/qr/"+url.PathEscape(id), &resp, accessToken)
	return resp, err
}
