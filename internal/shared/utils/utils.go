// Утилитарные функции общего назначения
package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// PNGDataURLPrefix — префикс картинки в image_url.
const PNGDataURLPrefix = "data:image/png;base64,"

var errNotPNGDataURL = errors.New("not a png data url")

// EncodePNGDataURL упаковывает PNG в data:image/png;base64,...
func EncodePNGDataURL(png []byte) string {
	return PNGDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodePNGDataURL достаёт PNG из data URL.
// Сервер отдаёт только PNG, поэтому другие форматы считаются ошибкой.
func DecodePNGDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, PNGDataURLPrefix) {
		return nil, errNotPNGDataURL
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, PNGDataURLPrefix))
}
