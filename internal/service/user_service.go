package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tasktrack/internal/cache"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user lookups. The name lookup sits on the auth
// middleware hot path, so it is cached; users are immutable after
// registration, which keeps the cache trivially consistent. The cached copy
// never includes the password hash (the model strips it from JSON), so
// password checks always go through the repository.
type UserService interface {
	GetByName(ctx context.Context, name string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(name string) string {
	return fmt.Sprintf("user:name:%s", name)
}

func (s *userService) GetByName(ctx context.Context, name string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(name)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil && cached.ID != 0 {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(name), payload, userCacheTTL)
	}
	return user, nil
}
