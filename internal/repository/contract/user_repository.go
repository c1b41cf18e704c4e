package contract

import (
	"context"
	"errors"

	"chameleon-be/internal/entity"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
