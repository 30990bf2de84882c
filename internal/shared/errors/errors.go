// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Пользователь с таким email или username уже есть
	ErrAlreadyExists = errors.New("user already exists")
	// Неверные учётные данные, одинаково для неизвестного email и неверного пароля
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Нет заголовка Authorization
	ErrAuthHeaderMissing = errors.New("authorization header missing")
	// Заголовок есть, токена в нём нет
	ErrTokenMissing = errors.New("token missing")
	// Подпись не сошлась или токен просрочен
	ErrTokenInvalid = errors.New("invalid or expired token")
	// Ресурс не найден или принадлежит другому пользователю
	ErrNotFound = errors.New("not found or not authorized")
	// Слишком много запросов
	ErrTooManyRequests = errors.New("too many requests")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal server error")
	// Строка не помещается в QR-код выбранного уровня коррекции
	ErrContentTooLong = errors.New("content too long to encode")
	// Записи нет в локальной истории клиента
	ErrNotCached = errors.New("qr code not found in local history")
)

// Invalid оборачивает ErrInvalidInput понятным для клиента сообщением.
//
// errors.Is(err, ErrInvalidInput) остаётся true, а err.Error() возвращает msg.
func Invalid(msg string) error {
	return &detailed{kind: ErrInvalidInput, msg: msg}
}

// Internal оборачивает причину в ErrInternal, чтобы её можно было залогировать,
// не показывая клиенту.
func Internal(cause error) error {
	if cause == nil {
		return ErrInternal
	}
	// уже обёрнута ниже по стеку
	if errors.Is(cause, ErrInternal) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrInternal, cause)
}

type detailed struct {
	kind error
	msg  string
}

func (e *detailed) Error() string { return e.msg }

func (e *detailed) Unwrap() error { return e.kind }
