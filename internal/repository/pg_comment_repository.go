package repository

import (
	"context"

	"github.com/featurevote/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCommentRepository は CommentRepository の PostgreSQL 実装
type PgCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgCommentRepository は PgCommentRepository を生成する
func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

// ListByFeatureID はフィーチャーのコメント一覧を古い順で返す
func (r *PgCommentRepository) ListByFeatureID(ctx context.Context, featureID string) ([]*model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, feature_id, author_id, author_name, body, created_at
		 FROM comments WHERE feature_id = $1 ORDER BY created_at ASC`,
		featureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.FeatureID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// Create はコメントを作成する
func (r *PgCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO comments (feature_id, author_id, author_name, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		comment.FeatureID, comment.AuthorID, comment.AuthorName, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

// Delete はコメントを削除する。対象が存在しない場合は ErrNotFound を返す
func (r *PgCommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
