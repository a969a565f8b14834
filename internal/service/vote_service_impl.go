package service

import (
	"context"

	"github.com/featurevote/backend/internal/repository"
)

// VoteMetrics は投票結果のカウンタ。実装は internal/metrics
type VoteMetrics interface {
	VoteApplied()
	VoteDuplicate()
}

// VoteServiceImpl は VoteService の実装
type VoteServiceImpl struct {
	voteRepo    repository.VoteRepository
	featureRepo repository.FeatureRepository
	events      EventPublisher // optional, nil = skip
	metrics     VoteMetrics    // optional, nil = skip
}

// NewVoteService は VoteServiceImpl を生成する（DI: リポジトリ・通知・メトリクスを注入）
func NewVoteService(voteRepo repository.VoteRepository, featureRepo repository.FeatureRepository, events EventPublisher, metrics VoteMetrics) VoteService {
	return &VoteServiceImpl{voteRepo: voteRepo, featureRepo: featureRepo, events: events, metrics: metrics}
}

// Upvote は投票を適用する。多重投票の排除は VoteRepository（votes の
// 主キー）が保証し、ここでは結果を返すだけ。新規適用時は購読者へ
// 更新後の投票数を通知する
func (s *VoteServiceImpl) Upvote(ctx context.Context, userID, featureID string) (bool, error) {
	f, err := s.featureRepo.GetByID(ctx, featureID)
	if err != nil {
		return false, err
	}

	applied, err := s.voteRepo.Vote(ctx, userID, featureID)
	if err != nil {
		return false, err
	}

	if !applied {
		if s.metrics != nil {
			s.metrics.VoteDuplicate()
		}
		return false, nil
	}

	if s.metrics != nil {
		s.metrics.VoteApplied()
	}
	if s.events != nil {
		s.events.PublishVote(f.AppID, f.ID, f.VotesCount+1)
	}
	return true, nil
}

// HasVoted はユーザーが投票済みかを返す
func (s *VoteServiceImpl) HasVoted(ctx context.Context, userID, featureID string) (bool, error) {
	return s.voteRepo.HasVoted(ctx, userID, featureID)
}

// ListVotedFeatureIDs はユーザーが投票済みのフィーチャー ID 一覧を返す
func (s *VoteServiceImpl) ListVotedFeatureIDs(ctx context.Context, userID string) ([]string, error) {
	return s.voteRepo.ListVotedFeatureIDs(ctx, userID)
}
