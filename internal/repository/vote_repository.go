package repository

import "context"

// VoteRepository は投票永続化のインターフェース。
// 同一 (user, feature) の投票は高々1回だけ適用される
type VoteRepository interface {
	// Vote は投票を登録し、新規に適用されたかどうかを返す。
	// 既に投票済みの場合は (false, nil)
	Vote(ctx context.Context, userID, featureID string) (bool, error)
	HasVoted(ctx context.Context, userID, featureID string) (bool, error)
	// ListVotedFeatureIDs はユーザーが投票済みのフィーチャー ID 集合を返す
	ListVotedFeatureIDs(ctx context.Context, userID string) ([]string, error)
}
