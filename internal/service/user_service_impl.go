package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/featurevote/backend/internal/model"
	"github.com/featurevote/backend/internal/repository"
)

const maxUserNameLen = 50

// UserServiceImpl は UserService の実装
type UserServiceImpl struct {
	userRepo repository.UserRepository
}

// NewUserService は UserServiceImpl を生成する（DI: UserRepository を注入）
func NewUserService(userRepo repository.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// Register はユーザーを作成する。名前は 1〜50 文字
func (s *UserServiceImpl) Register(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLen {
		return nil, ErrInvalidUserName
	}

	user := &model.User{Name: name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID は ID でユーザーを取得する
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
