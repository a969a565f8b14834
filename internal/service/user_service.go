package service

import (
	"context"
	"errors"

	"github.com/featurevote/backend/internal/model"
)

// ErrInvalidUserName はユーザー名が空か長すぎる場合に返す
var ErrInvalidUserName = errors.New("invalid user name")

// UserService はユーザー管理のインターフェース
type UserService interface {
	// Register は匿名ボード ID としてユーザーを作成する
	Register(ctx context.Context, name string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
