package service

import (
	"context"

	"github.com/featurevote/backend/internal/board"
	"github.com/featurevote/backend/internal/model"
)

// FeatureService はフィーチャー機能に関するビジネスロジックのインターフェース
type FeatureService interface {
	// List はアプリのフィーチャー一覧を検索・ソートして返す
	List(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error)
	GetByID(ctx context.Context, id string) (*model.Feature, error)
	Create(ctx context.Context, feature *model.Feature) error
	UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error
	Delete(ctx context.Context, id string) error
}
