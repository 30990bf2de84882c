package memory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/config"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// HistoryDump — формат файла локальной истории:
//
//	{ "user_id": "...", "items": [ ... ] }
//
// UserID нужен, чтобы не показать историю одного пользователя после
// входа под другим.
type HistoryDump struct {
	UserID string          `json:"user_id,omitempty"`
	Items  []shared.QRCode `json:"items"`
}

// DefaultHistoryPath возвращает $HOME/.qrkeeper/history.json.
func DefaultHistoryPath() (string, error) {
	dir, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// SaveToFile сохраняет store в path (директория 0700, файл 0600).
func SaveToFile(path, userID string, store *HistoryStore) error {
	out := HistoryDump{UserID: userID, Items: store.List()}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadFromFile загружает историю из path в store и возвращает владельца.
//
// Отсутствующий файл — нормальная ситуация при первом запуске: store
// остаётся пустым, ошибки нет.
func LoadFromFile(path string, store *HistoryStore) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	var dump HistoryDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return "", err
	}

	store.ReplaceAll(dump.Items)
	return dump.UserID, nil
}
