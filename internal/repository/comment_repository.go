package repository

import (
	"context"

	"github.com/featurevote/backend/internal/model"
)

// CommentRepository はコメント永続化のインターフェース
type CommentRepository interface {
	ListByFeatureID(ctx context.Context, featureID string) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
}
