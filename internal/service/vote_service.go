package service

import "context"

// VoteService は投票機能に関するビジネスロジックのインターフェース
type VoteService interface {
	// Upvote は投票を適用し、新規に適用されたかどうかを返す。
	// 投票済みの場合は (false, nil)。重複投票はエラーではない
	Upvote(ctx context.Context, userID, featureID string) (bool, error)
	HasVoted(ctx context.Context, userID, featureID string) (bool, error)
	ListVotedFeatureIDs(ctx context.Context, userID string) ([]string, error)
}
