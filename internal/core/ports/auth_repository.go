package ports

import (
	"context"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// AuthRepository defines the interface for console user persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
