package service

import (
	"context"

	"github.com/featurevote/backend/internal/board"
	"github.com/featurevote/backend/internal/model"
	"github.com/featurevote/backend/internal/repository"
)

// FeatureServiceImpl は FeatureService の実装
type FeatureServiceImpl struct {
	featureRepo repository.FeatureRepository
	events      EventPublisher // optional, nil = skip
}

// NewFeatureService は FeatureServiceImpl を生成する（DI: FeatureRepository を注入）
func NewFeatureService(featureRepo repository.FeatureRepository, events EventPublisher) FeatureService {
	return &FeatureServiceImpl{featureRepo: featureRepo, events: events}
}

// List はアプリのフィーチャー一覧を取得し、board コアで検索・ソートの
// 射影を適用して返す。クライアント側と同じ射影をサーバでも通すことで
// 並び順の解釈が両者で一致する
func (s *FeatureServiceImpl) List(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error) {
	all, err := s.featureRepo.ListByAppID(ctx, appID)
	if err != nil {
		return nil, err
	}

	list := &board.FeatureList{SearchText: search, Sort: sort}
	visible := list.Visible(all)

	return &model.FeatureListResult{
		Features:   visible,
		EmptyState: list.EmptyState(all, visible).String(),
	}, nil
}

// GetByID は ID でフィーチャーを取得する
func (s *FeatureServiceImpl) GetByID(ctx context.Context, id string) (*model.Feature, error) {
	return s.featureRepo.GetByID(ctx, id)
}

// Create はフィーチャーを作成する。ステータス未指定時は open
func (s *FeatureServiceImpl) Create(ctx context.Context, feature *model.Feature) error {
	if feature.Status == "" {
		feature.Status = model.StatusOpen
	}
	if err := s.featureRepo.Create(ctx, feature); err != nil {
		return err
	}
	if s.events != nil {
		s.events.PublishFeatureCreated(feature.AppID, feature.ID)
	}
	return nil
}

// UpdateStatus はフィーチャーのステータスを更新する
func (s *FeatureServiceImpl) UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error {
	if err := s.featureRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.events != nil {
		if f, err := s.featureRepo.GetByID(ctx, id); err == nil {
			s.events.PublishStatusChanged(f.AppID, f.ID, string(status))
		}
	}
	return nil
}

// Delete はフィーチャーを削除する
func (s *FeatureServiceImpl) Delete(ctx context.Context, id string) error {
	return s.featureRepo.Delete(ctx, id)
}
