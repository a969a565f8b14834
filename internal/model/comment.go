package model

import "time"

// Comment はフィーチャーへのコメントを表す
type Comment struct {
	ID         string    `json:"id"`
	FeatureID  string    `json:"feature_id"`
	AuthorID   string    `json:"-"` // internal, not exposed
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
