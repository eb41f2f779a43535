package contextx

import (
	"context"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type contextKeyRole struct{}

func (r Role) String() string {
	return string(r)
}

func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, contextKeyRole{}, role)
}

func RoleFromContext(ctx context.Context) (Role, error) {
	role, ok := ctx.Value(contextKeyRole{}).(Role)
	if !ok {
		return "", fmt.Errorf("role: %w", ErrNoValue)
	}

	return role, nil
}
