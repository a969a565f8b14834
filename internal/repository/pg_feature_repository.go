package repository

import (
	"context"
	"errors"

	"github.com/featurevote/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgFeatureRepository は FeatureRepository の PostgreSQL 実装
type PgFeatureRepository struct {
	pool *pgxpool.Pool
}

// NewPgFeatureRepository は PgFeatureRepository を生成する
func NewPgFeatureRepository(pool *pgxpool.Pool) *PgFeatureRepository {
	return &PgFeatureRepository{pool: pool}
}

// ListByAppID はアプリのフィーチャー一覧を取得する。一覧ではコメント本体は
// ロードせず件数だけを LEFT JOIN で集計する
func (r *PgFeatureRepository) ListByAppID(ctx context.Context, appID string) ([]*model.Feature, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.app_id, f.author_id, f.title, f.description, f.votes_count, f.status, f.created_at, f.updated_at,
		        COUNT(c.id) AS comments_count
		 FROM features f
		 LEFT JOIN comments c ON c.feature_id = f.id
		 WHERE f.app_id = $1 AND f.status != 'deleted'
		 GROUP BY f.id
		 ORDER BY f.created_at DESC`,
		appID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*model.Feature
	for rows.Next() {
		var f model.Feature
		if err := rows.Scan(&f.ID, &f.AppID, &f.AuthorID, &f.Title, &f.Description, &f.VotesCount, &f.Status, &f.CreatedAt, &f.UpdatedAt, &f.CommentsCount); err != nil {
			return nil, err
		}
		features = append(features, &f)
	}
	return features, rows.Err()
}

// GetByID は ID でフィーチャーを取得する。コメントも併せてロードする
func (r *PgFeatureRepository) GetByID(ctx context.Context, id string) (*model.Feature, error) {
	var f model.Feature
	err := r.pool.QueryRow(ctx,
		`SELECT id, app_id, author_id, title, description, votes_count, status, created_at, updated_at
		 FROM features WHERE id = $1 AND status != 'deleted'`,
		id,
	).Scan(&f.ID, &f.AppID, &f.AuthorID, &f.Title, &f.Description, &f.VotesCount, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, feature_id, author_id, author_name, body, created_at
		 FROM comments WHERE feature_id = $1 ORDER BY created_at ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.FeatureID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		f.Comments = append(f.Comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	f.CommentsCount = len(f.Comments)
	return &f, nil
}

// Create はフィーチャーを作成する
func (r *PgFeatureRepository) Create(ctx context.Context, feature *model.Feature) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO features (app_id, author_id, title, description, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, votes_count, created_at, updated_at`,
		feature.AppID, feature.AuthorID, feature.Title, feature.Description, feature.Status,
	).Scan(&feature.ID, &feature.VotesCount, &feature.CreatedAt, &feature.UpdatedAt)
}

// UpdateStatus はフィーチャーのステータスを更新する。
// 対象が存在しない場合は ErrNotFound を返す
func (r *PgFeatureRepository) UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE features SET status = $1, updated_at = NOW() WHERE id = $2 AND status != 'deleted'`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete はフィーチャーを論理削除する（status を "deleted" に更新）。
// 対象が存在しない場合は ErrNotFound を返す
func (r *PgFeatureRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE features SET status = 'deleted', updated_at = NOW() WHERE id = $1 AND status != 'deleted'`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
