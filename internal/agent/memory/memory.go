// Package memory хранит локальную копию истории QR-кодов пользователя.
//
// История загружается командой history и нужна для работы без сети:
// export достаёт картинку прямо из сохранённого image_url.
package memory

import (
	"sort"
	"sync"

	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// HistoryStore — потокобезопасное in-memory хранилище записей QR.
type HistoryStore struct {
	mu    sync.RWMutex
	items map[string]shared.QRCode
}

// NewHistory создаёт пустое хранилище.
func NewHistory() *HistoryStore {
	return &HistoryStore{
		items: make(map[string]shared.QRCode),
	}
}

// Get возвращает запись по ID или serr.ErrNotCached.
func (s *HistoryStore) Get(id string) (shared.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.items[id]
	if !ok {
		return shared.QRCode{}, serr.ErrNotCached
	}
	return q, nil
}

// ReplaceAll полностью заменяет содержимое ответом сервера.
func (s *HistoryStore) ReplaceAll(items []shared.QRCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]shared.QRCode, len(items))
	for _, q := range items {
		s.items[q.ID] = q
	}
}

// Put добавляет или перезаписывает одну запись (после generate).
func (s *HistoryStore) Put(q shared.QRCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[q.ID] = q
}

// List возвращает записи в том же порядке, что и сервер: новые первыми.
func (s *HistoryStore) List() []shared.QRCode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]shared.QRCode, 0, len(s.items))
	for _, q := range s.items {
		result = append(result, q)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Delete удаляет запись. Отсутствие записи ошибкой не считается:
// на сервере она уже удалена.
func (s *HistoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
}

// Len возвращает число записей.
func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
