// Package qr рендерит QR-коды в PNG и упаковывает их в data URL,
// который целиком сохраняется в записи qr_codes.image_url.
package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/utils"
)

// DataURLPrefix — префикс картинки в image_url.
const DataURLPrefix = utils.PNGDataURLPrefix

// Renderer — детерминированное отображение строки в PNG.
type Renderer struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewRenderer создаёт рендерер по секции qr конфига.
// Размер — сторона картинки в пикселях, вокруг кода остаётся стандартная
// тихая зона в 4 модуля.
func NewRenderer(cfg config.QRConfig) *Renderer {
	size := cfg.Size
	if size <= 0 {
		size = 300
	}
	return &Renderer{size: size, level: parseLevel(cfg.Level)}
}

// PNG возвращает сырые байты PNG.
//
// Ёмкость QR-кода считается в байтах и зависит от уровня коррекции.
// Не поместившаяся строка даёт serr.ErrContentTooLong.
func (r *Renderer) PNG(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty qr content")
	}

	// New падает только когда данные не влезают ни в одну версию
	q, err := qrcode.New(content, r.level)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w: %v", serr.ErrContentTooLong, err)
	}

	png, err := q.PNG(r.size)
	if err != nil {
		return nil, fmt.Errorf("qr png: %w", err)
	}
	return png, nil
}

// Render возвращает картинку в виде data:image/png;base64,...
func (r *Renderer) Render(content string) (string, error) {
	png, err := r.PNG(content)
	if err != nil {
		return "", err
	}
	return utils.EncodePNGDataURL(png), nil
}

func parseLevel(s string) qrcode.RecoveryLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return qrcode.Low
	case "high":
		return qrcode.High
	case "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
