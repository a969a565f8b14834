package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/featurevote/backend/internal/model"
	"github.com/featurevote/backend/internal/repository"
	"github.com/featurevote/backend/internal/service"
	"github.com/featurevote/backend/pkg/auth"
)

// CommentHandler はコメント機能の HTTP ハンドラ
type CommentHandler struct {
	commentService service.CommentService
	userService    service.UserService
}

// NewCommentHandler は CommentHandler を生成する
func NewCommentHandler(commentService service.CommentService, userService service.UserService) *CommentHandler {
	return &CommentHandler{commentService: commentService, userService: userService}
}

// List は GET /api/features/{id}/comments を処理する
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	featureID := r.PathValue("id")
	if featureID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	comments, err := h.commentService.ListByFeatureID(r.Context(), featureID)
	if err != nil {
		slog.Error("list comments failed", "error", err, "feature_id", featureID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	// nil スライスを空配列として返す
	if comments == nil {
		comments = []*model.Comment{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]*model.Comment{"comments": comments})
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// Create は POST /api/features/{id}/comments を処理する（認証必須）
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	featureID := r.PathValue("id")
	if featureID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	authorName := ""
	if user, err := h.userService.GetByID(r.Context(), userID); err == nil {
		authorName = user.Name
	}

	comment := &model.Comment{
		FeatureID:  featureID,
		AuthorID:   userID,
		AuthorName: authorName,
		Body:       req.Body,
	}
	if err := h.commentService.Create(r.Context(), comment); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidComment):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_body"})
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		default:
			slog.Error("create comment failed", "error", err, "feature_id", featureID, "user_id", userID)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(comment)
}

// Delete は DELETE /api/comments/{id} を処理する（管理者のみ）
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}
	if !auth.IsAdminFromContext(r.Context()) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}

	id := r.PathValue("id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("delete comment failed", "error", err, "comment_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
