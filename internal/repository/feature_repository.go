package repository

import (
	"context"

	"github.com/featurevote/backend/internal/model"
)

// FeatureRepository はフィーチャー永続化のインターフェース
type FeatureRepository interface {
	// ListByAppID はアプリのフィーチャー一覧をコメント件数付きで返す
	ListByAppID(ctx context.Context, appID string) ([]*model.Feature, error)
	// GetByID はフィーチャーをコメント込みで取得する
	GetByID(ctx context.Context, id string) (*model.Feature, error)
	Create(ctx context.Context, feature *model.Feature) error
	UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error
	Delete(ctx context.Context, id string) error
}
