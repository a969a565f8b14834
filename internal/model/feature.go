package model

import (
	"fmt"
	"time"
)

// FeatureStatus はフィーチャーリクエストの進行状態
type FeatureStatus string

const (
	StatusOpen       FeatureStatus = "open"
	StatusPlanned    FeatureStatus = "planned"
	StatusInProgress FeatureStatus = "in_progress"
	StatusCompleted  FeatureStatus = "completed"

	// StatusDeleted は論理削除済み。API からは見えない内部ステータス
	StatusDeleted FeatureStatus = "deleted"
)

// ParseFeatureStatus は文字列をパースして FeatureStatus を返す。
// "deleted" は外部から指定できない。
func ParseFeatureStatus(s string) (FeatureStatus, error) {
	switch FeatureStatus(s) {
	case StatusOpen, StatusPlanned, StatusInProgress, StatusCompleted:
		return FeatureStatus(s), nil
	}
	return "", fmt.Errorf("invalid feature status: %q", s)
}

type Feature struct {
	ID          string        `json:"id"`
	AppID       string        `json:"app_id"`
	AuthorID    string        `json:"-"` // internal, not exposed
	Title       string        `json:"title"`
	Description string        `json:"description"`
	VotesCount  int           `json:"votes_count"`
	Status      FeatureStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Comments は詳細取得時のみロードされる。一覧では件数だけを返す
	Comments      []*Comment `json:"comments,omitempty"`
	CommentsCount int        `json:"comments_count"`
}

// FeatureListResult はフィルタ・ソート済みのフィーチャー一覧
type FeatureListResult struct {
	Features []*Feature `json:"features"`
	// EmptyState は "no_features"（まだ投稿なし）と
	// "no_search_results"（検索結果なし）を区別する。空なら結果あり
	EmptyState string `json:"empty_state,omitempty"`
}
