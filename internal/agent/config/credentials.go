// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит access токен, идентификатор пользователя и адрес
// сервера, на котором токен был получен. Файл размещается в домашней директории пользователя:
//
//	~/.qrkeeper/credentials.json
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Dir — имя каталога клиента в домашней директории.
const Dir = ".qrkeeper"

// Credentials содержит учётные данные, используемые CLI-клиентом.
//
// Refresh токена нет: access токен живёт 7 дней, после чего нужен повторный login.
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Server string `json:"server,omitempty"`
}

// LoggedIn сообщает, сохранён ли токен.
func (c *Credentials) LoggedIn() bool {
	return c != nil && c.Token != ""
}

// HomeDir возвращает <home>/.qrkeeper.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir), nil
}

// DefaultPath возвращает путь к файлу учётных данных:
//
//	<home>/.qrkeeper/credentials.json
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// Load загружает учётные данные из файла.
//
// Если файл не существует, возвращает пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в JSON.
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Remove удаляет файл учётных данных. Отсутствие файла ошибкой не считается.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
