package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/featurevote/backend/internal/model"
	"github.com/featurevote/backend/internal/repository"
)

const maxCommentLen = 4000

// CommentServiceImpl は CommentService の実装
type CommentServiceImpl struct {
	commentRepo repository.CommentRepository
	featureRepo repository.FeatureRepository
}

// NewCommentService は CommentServiceImpl を生成する（DI: リポジトリを注入）
func NewCommentService(commentRepo repository.CommentRepository, featureRepo repository.FeatureRepository) CommentService {
	return &CommentServiceImpl{commentRepo: commentRepo, featureRepo: featureRepo}
}

// ListByFeatureID はフィーチャーのコメント一覧を返す
func (s *CommentServiceImpl) ListByFeatureID(ctx context.Context, featureID string) ([]*model.Comment, error) {
	return s.commentRepo.ListByFeatureID(ctx, featureID)
}

// Create はコメントを作成する。本文は空白のみ・4000文字超を拒否し、
// 対象フィーチャーの存在を確認する
func (s *CommentServiceImpl) Create(ctx context.Context, comment *model.Comment) error {
	comment.Body = strings.TrimSpace(comment.Body)
	if comment.Body == "" || utf8.RuneCountInString(comment.Body) > maxCommentLen {
		return ErrInvalidComment
	}

	if _, err := s.featureRepo.GetByID(ctx, comment.FeatureID); err != nil {
		return err
	}
	return s.commentRepo.Create(ctx, comment)
}

// Delete はコメントを削除する
func (s *CommentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.commentRepo.Delete(ctx, id)
}
