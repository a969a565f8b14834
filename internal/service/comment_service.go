package service

import (
	"context"
	"errors"

	"github.com/featurevote/backend/internal/model"
)

// ErrInvalidComment はコメント本文が空か長すぎる場合に返す
var ErrInvalidComment = errors.New("invalid comment body")

// CommentService はコメント機能に関するビジネスロジックのインターフェース
type CommentService interface {
	ListByFeatureID(ctx context.Context, featureID string) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
}
