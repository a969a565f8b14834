// Package board derives the client-facing projection of a feature board:
// substring search, vote-count / recency ordering, and the current user's
// vote membership. It holds no I/O and never mutates its inputs; the
// feature collection and vote set are owned by the caller and passed in
// as snapshots.
package board

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/featurevote/backend/internal/model"
	"golang.org/x/text/cases"
)

// ErrAlreadyVoted is returned when an upvote is requested for a feature
// the current user has already voted for. Not fatal: the caller surfaces
// it as a disabled control, never as a failure.
var ErrAlreadyVoted = errors.New("already voted")

// SortKey はフィーチャー一覧の並び順
type SortKey int

const (
	// SortByVotes は投票数の降順（デフォルト）
	SortByVotes SortKey = iota
	// SortByDate は作成日時の降順（新しい順）
	SortByDate
)

// ParseSortKey は "votes" / "date" をパースする。不明な値はデフォルトの
// SortByVotes にフォールバックする
func ParseSortKey(s string) SortKey {
	if s == "date" {
		return SortByDate
	}
	return SortByVotes
}

// VoteSet は現在のユーザーが投票済みのフィーチャー ID 集合。
// この集合の更新は外部（投票 API の往復）が担い、board は参照のみ
type VoteSet map[string]struct{}

// NewVoteSet は ID スライスから VoteSet を作る
func NewVoteSet(ids []string) VoteSet {
	s := make(VoteSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has は id が投票済みかを返す
func (s VoteSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Voter は投票の実処理を担う外部コラボレータ。投票数の更新は
// コラボレータ側で行われ、board は結果のスナップショットを読むだけ
type Voter interface {
	Upvote(ctx context.Context, featureID string) error
}

// FeatureList はフィーチャー一覧のフィルタ・ソート状態
type FeatureList struct {
	SearchText string
	Sort       SortKey
	Votes      VoteSet
}

// Visible は all のうち検索条件に合うものをソートして返す。
// フィルタはタイトルまたは説明文に対する大文字小文字・ロケール非依存の
// 部分一致。ソートは安定で、同値はフィルタ後の相対順を保つ。
// 戻り値は新しいスライスで、all を書き換えない
func (l *FeatureList) Visible(all []*model.Feature) []*model.Feature {
	out := make([]*model.Feature, 0, len(all))

	if q := strings.TrimSpace(l.SearchText); q != "" {
		// cases.Caser is stateful; build one per call
		fold := cases.Fold()
		fq := fold.String(q)
		for _, f := range all {
			if strings.Contains(fold.String(f.Title), fq) ||
				strings.Contains(fold.String(f.Description), fq) {
				out = append(out, f)
			}
		}
	} else {
		out = append(out, all...)
	}

	switch l.Sort {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].VotesCount > out[j].VotesCount
		})
	}
	return out
}

// HasVoted は featureID が投票済みかを返す
func (l *FeatureList) HasVoted(featureID string) bool {
	return l.Votes.Has(featureID)
}

// RequestUpvote は未投票であることを確認してから voter に投票を委譲する。
// 投票済みなら ErrAlreadyVoted を返し、外部呼び出しは行わない。
// この事前チェックは UI 表示の最適化にすぎず、同一 (user, feature) の
// 多重投票の排除はコラボレータ側（votes テーブルの主キー）が保証する
func (l *FeatureList) RequestUpvote(ctx context.Context, voter Voter, f *model.Feature) error {
	if l.HasVoted(f.ID) {
		return ErrAlreadyVoted
	}
	return voter.Upvote(ctx, f.ID)
}

// Emptiness は一覧が空である理由の区別
type Emptiness int

const (
	// NotEmpty は表示対象あり
	NotEmpty Emptiness = iota
	// NoFeatures はそもそも投稿がない状態
	NoFeatures
	// NoSearchResults は検索条件に合う投稿がない状態
	NoSearchResults
)

func (e Emptiness) String() string {
	switch e {
	case NoFeatures:
		return "no_features"
	case NoSearchResults:
		return "no_search_results"
	}
	return ""
}

// EmptyState は「まだ投稿がない」と「検索結果なし」を区別する
func (l *FeatureList) EmptyState(all, visible []*model.Feature) Emptiness {
	if len(visible) > 0 {
		return NotEmpty
	}
	if len(all) == 0 {
		return NoFeatures
	}
	return NoSearchResults
}
