// Package authz хранит субъекта запроса в контексте и выполняет явную
// проверку прав в начале каждой изменяющей операции.
package authz

import (
	"context"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// Principal: аутентифицированный субъект
type Principal struct {
	Subject string `json:"subject"`
	Role    Role   `json:"role"`
}

type principalKey struct{}

// WithPrincipal кладёт субъекта в контекст
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext достаёт субъекта из контекста
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// System помечает контекст фоновой задачи (воркер очереди)
func System(ctx context.Context) context.Context {
	return WithPrincipal(ctx, Principal{Subject: "system", Role: RoleSystem})
}

// RequireAdmin возвращает domain.ErrUnauthorized, если в контексте нет администратора или системы
func RequireAdmin(ctx context.Context) error {
	p, ok := FromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	switch p.Role {
	case RoleAdmin, RoleSystem:
		return nil
	}
	return domain.ErrUnauthorized
}
