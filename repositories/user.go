package repositories

import (
	"fmt"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"

	"github.com/samber/lo"
)

const usersCollection = "users"

// UserRepository is read-only: the users collection belongs to the
// account service.
type UserRepository struct {
	store contract.Store
	log   *slog.Logger
}

func NewUserRepository(store contract.Store, log *slog.Logger) *UserRepository {
	return &UserRepository{store: store, log: log}
}

func (u *UserRepository) All() ([]domain.User, error) {
	var users []domain.User
	if err := u.store.Load(usersCollection, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *UserRepository) ByUsername(username string) (domain.User, error) {
	users, err := u.All()
	if err != nil {
		return domain.User{}, err
	}
	user, found := lo.Find(users, func(item domain.User) bool {
		return item.Username == username
	})
	if !found {
		return domain.User{}, fmt.Errorf("user %q not found", username)
	}
	return user, nil
}
