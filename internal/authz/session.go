package authz

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName: имя cookie с токеном сессии
const CookieName = "styleinspo_session"

const issuer = "styleinspo"

// Claims: содержимое токена сессии
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager проверяет учётные данные единственного администратора и выпускает HS256-токены
type SessionManager struct {
	adminEmail   string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewSessionManager принимает либо готовый bcrypt-хэш, либо пароль, который хэшируется при старте
func NewSessionManager(adminEmail, password, passwordHash, secret string, ttl time.Duration) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("admin password is empty")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка хэширования пароля администратора: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: hash,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login сверяет email и пароль и возвращает подписанный токен
func (m *SessionManager) Login(email, password string) (string, time.Time, error) {
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(m.adminEmail)) == 1
	passErr := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := m.now()
	expires := now.Add(m.ttl)
	claims := Claims{
		Role: string(RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.adminEmail,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return token, expires, nil
}

// Parse проверяет токен и возвращает субъекта
func (m *SessionManager) Parse(tokenString string) (Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Role != string(RoleAdmin) {
		return Principal{}, domain.ErrUnauthorized
	}
	return Principal{Subject: claims.Subject, Role: RoleAdmin}, nil
}

// TTL: время жизни сессии
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
