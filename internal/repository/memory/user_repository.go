package memory

import (
	"context"
	"strings"

	"chameleon-be/internal/entity"
	"chameleon-be/internal/repository/contract"

	"github.com/google/uuid"
)

// UserRepository serves the fixed account list from configuration.
type UserRepository struct {
	byEmail map[string]*entity.User
	byId    map[uuid.UUID]*entity.User
}

// NewUserRepository takes email -> bcrypt hash.
func NewUserRepository(users map[string]string) *UserRepository {
	r := &UserRepository{
		byEmail: make(map[string]*entity.User, len(users)),
		byId:    make(map[uuid.UUID]*entity.User, len(users)),
	}
	for email, hash := range users {
		email = strings.ToLower(email)
		u := &entity.User{Id: entity.UserIDFor(email), Email: email, PasswordHash: hash}
		r.byEmail[email] = u
		r.byId[u.Id] = u
	}
	return r
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]; ok {
		return u, nil
	}
	return nil, contract.ErrUserNotFound
}

func (r *UserRepository) FindById(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.byId[id]; ok {
		return u, nil
	}
	return nil, contract.ErrUserNotFound
}
