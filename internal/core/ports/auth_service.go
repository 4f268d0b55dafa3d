package ports

import (
	"context"

	"github.com/openwave/social-platform/internal/core/domain"
)

// AuthService implements registration and login. The rest of the API only
// ever sees an already-resolved caller identity; credential checks live here.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
