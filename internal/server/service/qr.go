package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// DefaultQRName — имя записи, если клиент его не передал.
const DefaultQRName = "Untitled QR"

// QRService реализует бизнес-логику работы с QR-кодами пользователя.
// Сервис:
//   - рисует картинку через Renderer;
//   - сохраняет и читает записи только в пределах владельца;
//   - не знает о HTTP и БД напрямую.
type QRService struct {
	repo     QRCodesRepo
	renderer Renderer
	policy   config.QRConfig
}

// PreviewResult — отрисованный, но не сохранённый QR-код.
type PreviewResult struct {
	URL      string
	ImageURL string
	// OwnerID пустой, если запрос пришёл без валидного токена
	OwnerID string
}

type generateInput struct {
	URL  string `validate:"required,max=2048"`
	Name string `validate:"max=255"`
}

// NewQRService создаёт новый QRService.
func NewQRService(repo QRCodesRepo, renderer Renderer, cfg config.QRConfig) *QRService {
	return &QRService{
		repo:     repo,
		renderer: renderer,
		policy:   cfg,
	}
}

func (s *QRService) defaultName() string {
	if n := strings.TrimSpace(s.policy.DefaultName); n != "" {
		return n
	}
	return DefaultQRName
}

// ownerID достаёт id владельца из identity.
// Нет identity или id не UUID — ErrUnauthorized.
func ownerID(id *models.Identity) (uuid.UUID, error) {
	if id == nil || strings.TrimSpace(id.UserID) == "" {
		return uuid.Nil, serr.ErrUnauthorized
	}
	uid, err := uuid.Parse(id.UserID)
	if err != nil {
		return uuid.Nil, serr.ErrUnauthorized
	}
	return uid, nil
}

func (s *QRService) normalize(url, name string) (generateInput, error) {
	in := generateInput{
		URL:  strings.TrimSpace(url),
		Name: strings.TrimSpace(name),
	}
	if err := validateStruct(in); err != nil {
		return generateInput{}, err
	}
	if in.Name == "" {
		in.Name = s.defaultName()
	}
	return in, nil
}

// render рисует картинку. Слишком длинный для QR-кода url — ошибка клиента.
func (s *QRService) render(url string) (string, error) {
	img, err := s.renderer.Render(url)
	if err != nil {
		if errors.Is(err, serr.ErrContentTooLong) {
			return "", serr.Invalid("url too long to encode")
		}
		return "", serr.Internal(err)
	}
	return img, nil
}

// Generate рисует QR-код для url и сохраняет запись за владельцем.
//
// url проверяется раньше identity: пустой url даёт ErrInvalidInput
// независимо от того, есть ли токен.
//
// Ошибки:
//   - ErrInvalidInput — пустой или слишком длинный url/name, в том числе
//     url, который не помещается в QR-код;
//   - ErrUnauthorized — нет identity;
//   - ErrInternal — ошибка рендера или хранилища.
func (s *QRService) Generate(ctx context.Context, id *models.Identity, url, name string) (models.QRCode, error) {
	in, err := s.normalize(url, name)
	if err != nil {
		return models.QRCode{}, err
	}

	uid, err := ownerID(id)
	if err != nil {
		return models.QRCode{}, err
	}

	img, err := s.render(in.URL)
	if err != nil {
		return models.QRCode{}, err
	}

	rec, err := s.repo.Create(ctx, uid, in.Name, in.URL, img)
	if err != nil {
		return models.QRCode{}, serr.Internal(err)
	}
	return rec, nil
}

// Preview рисует QR-код без сохранения. Токен не обязателен.
func (s *QRService) Preview(ctx context.Context, id *models.Identity, url string) (PreviewResult, error) {
	in, err := s.normalize(url, "")
	if err != nil {
		return PreviewResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return PreviewResult{}, serr.Internal(err)
	}

	img, err := s.render(in.URL)
	if err != nil {
		return PreviewResult{}, err
	}

	res := PreviewResult{URL: in.URL, ImageURL: img}
	if uid, err := ownerID(id); err == nil {
		res.OwnerID = uid.String()
	}
	return res, nil
}

// List возвращает записи владельца, новые первыми.
// Пустой список — не ошибка.
func (s *QRService) List(ctx context.Context, id *models.Identity) ([]models.QRCode, error) {
	uid, err := ownerID(id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, serr.Internal(err)
	}
	if items == nil {
		items = []models.QRCode{}
	}
	return items, nil
}

// Delete удаляет запись, только если она принадлежит владельцу.
//
// Чужая и несуществующая запись неразличимы: обе дают ErrNotFound.
// Невалидный id тоже ErrNotFound, такой записи быть не может.
func (s *QRService) Delete(ctx context.Context, id *models.Identity, recordID string) (uuid.UUID, error) {
	uid, err := ownerID(id)
	if err != nil {
		return uuid.Nil, err
	}

	rid, err := uuid.Parse(strings.TrimSpace(recordID))
	if err != nil {
		return uuid.Nil, serr.ErrNotFound
	}

	deleted, err := s.repo.DeleteOwned(ctx, rid, uid)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return uuid.Nil, serr.ErrNotFound
		}
		return uuid.Nil, serr.Internal(err)
	}
	if !deleted {
		return uuid.Nil, serr.ErrNotFound
	}
	return rid, nil
}
