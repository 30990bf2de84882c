// Package crypto содержит криптографические примитивы,
// используемые сервером QRKeeper.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - генерацию, подпись и разбор JWT access-токенов;
//   - соблюдение требований безопасности (HS256, срок жизни).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
)

// JWTConfig описывает параметры генерации и проверки JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое — не проверяется.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен). Пустое — не проверяется.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
	// Now — источник времени, nil означает time.Now.
	Now func() time.Time
}

// JWTConfigFrom собирает JWTConfig из секции auth.
func JWTConfigFrom(cfg config.AuthConfig) JWTConfig {
	return JWTConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		SigningKey: cfg.JWT.SigningKey,
		AccessTTL:  cfg.AccessTTL,
	}
}

func (c JWTConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Claims — полезная нагрузка access-токена.
//
// Идентификатор пользователя лежит в id. Старые версии выдавали его
// под именем userId, такие токены тоже принимаются.
type Claims struct {
	UserID       string `json:"id,omitempty"`
	LegacyUserID string `json:"userId,omitempty"`
	Email        string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID возвращает id пользователя из того поля, которое заполнено.
func (c *Claims) SubjectID() string {
	for _, v := range []string{c.UserID, c.LegacyUserID, c.Subject} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит:
//   - id, email
//   - sub (userID), iss, aud
//   - iat (IssuedAt), exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
func NewAccessToken(userID, email string, cfg JWTConfig) (string, error) {
	now := cfg.now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ErrNoSubject — токен валиден, но id пользователя в нём нет.
var ErrNoSubject = errors.New("token has no subject")

// ParseAccessToken проверяет подпись, срок действия, iss/aud (если заданы)
// и возвращает claims.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.SubjectID() == "" {
		return nil, ErrNoSubject
	}
	return claims, nil
}
