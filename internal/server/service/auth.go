package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск access токенов
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig

	dummyOnce sync.Once
	dummyHash string
}

// AuthResult — пользователь и выданный ему токен.
type AuthResult struct {
	User  models.User
	Token string
}

type registerInput struct {
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required"`
}

// bcrypt не принимает пароли длиннее 72 байт
const maxPasswordBytes = 72

type loginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt:    crypto.JWTConfigFrom(cfg.Auth),
	}
}

// JWT возвращает параметры токенов, с которыми работает сервис.
// Нужен middleware, чтобы проверка совпадала с выдачей.
func (s *AuthService) JWT() crypto.JWTConfig {
	return s.jwt
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - username, email, password обязательны
//   - email должен быть валидным
//   - пароль не длиннее 72 байт (не символов)
//
// email приводится к нижнему регистру, username только обрезается по краям.
//
// Ошибки:
//   - ErrInvalidInput при некорректных данных
//   - ErrAlreadyExists если email или username уже заняты (без уточнения, что именно)
//   - ErrInternal при ошибках хранилища
func (s *AuthService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	in := registerInput{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if strings.TrimSpace(in.Password) == "" {
		in.Password = ""
	}
	if err := validateStruct(in); err != nil {
		return AuthResult{}, err
	}
	if len(in.Password) > maxPasswordBytes {
		return AuthResult{}, serr.Invalid("password must be at most 72 bytes")
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return AuthResult{}, serr.Internal(err)
	}
	if exists {
		return AuthResult{}, serr.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, serr.Internal(err)
	}

	// уникальный индекс всё равно может сработать при гонке двух регистраций
	user, err := s.users.Create(ctx, in.Username, in.Email, hash)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return AuthResult{}, serr.ErrAlreadyExists
		}
		return AuthResult{}, serr.Internal(err)
	}

	token, err := crypto.NewAccessToken(user.ID.String(), user.Email, s.jwt)
	if err != nil {
		return AuthResult{}, serr.Internal(err)
	}

	return AuthResult{User: user, Token: token}, nil
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Поведение:
//   - не раскрывает факт существования email: неизвестный email и неверный
//     пароль дают одну и ту же ErrInvalidCredentials
//   - в хранилище ничего не пишет
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
//   - ErrInternal
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	in := loginInput{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if strings.TrimSpace(in.Password) == "" {
		in.Password = ""
	}
	if err := validateStruct(in); err != nil {
		return AuthResult{}, err
	}

	// получаем юзера по email
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			// тратим столько же времени, сколько на настоящую проверку
			s.burnVerify(in.Password)
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, serr.Internal(err)
	}

	// проверяем пароль
	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, serr.Internal(err)
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}

	token, err := crypto.NewAccessToken(user.ID.String(), user.Email, s.jwt)
	if err != nil {
		return AuthResult{}, serr.Internal(err)
	}

	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("qrkeeper-dummy-password")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
