package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgVoteRepository は VoteRepository の PostgreSQL 実装
type PgVoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgVoteRepository は PgVoteRepository を生成する
func NewPgVoteRepository(pool *pgxpool.Pool) *PgVoteRepository {
	return &PgVoteRepository{pool: pool}
}

// Vote は投票を登録する。votes の主キー (user_id, feature_id) により
// 同一ユーザーの多重投票はここで排除され、votes_count の加算は
// 新規適用時のみ同一トランザクションで行う。votes_count は単調非減少
func (r *PgVoteRepository) Vote(ctx context.Context, userID, featureID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO votes (user_id, feature_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, feature_id) DO NOTHING`,
		userID, featureID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// already voted
		return false, nil
	}

	tag, err = tx.Exec(ctx,
		`UPDATE features SET votes_count = votes_count + 1, updated_at = NOW() WHERE id = $1`,
		featureID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrNotFound
	}

	return true, tx.Commit(ctx)
}

// HasVoted はユーザーが投票済みかを返す
func (r *PgVoteRepository) HasVoted(ctx context.Context, userID, featureID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = $1 AND feature_id = $2)`,
		userID, featureID,
	).Scan(&exists)
	return exists, err
}

// ListVotedFeatureIDs はユーザーが投票済みのフィーチャー ID 一覧を返す
func (r *PgVoteRepository) ListVotedFeatureIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT feature_id FROM votes WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
