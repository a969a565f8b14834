package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/featurevote/backend/internal/repository"
	"github.com/featurevote/backend/internal/service"
	"github.com/featurevote/backend/pkg/auth"
)

// VoteHandler は投票機能の HTTP ハンドラ
type VoteHandler struct {
	voteService service.VoteService
}

// NewVoteHandler は VoteHandler を生成する
func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Upvote は POST /api/features/{id}/vote を処理する（認証必須）。
// 投票済みの場合は 200 で "already_voted" を返す。重複はエラーではない
func (h *VoteHandler) Upvote(w http.ResponseWriter, r *http.Request) {
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

	applied, err := h.voteService.Upvote(r.Context(), userID, featureID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("upvote failed", "error", err, "feature_id", featureID, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	status := "voted"
	if !applied {
		status = "already_voted"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// MyVotes は GET /api/me/votes を処理する（認証必須）。
// 現在のユーザーの投票済みフィーチャー ID 集合を返す
func (h *VoteHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	ids, err := h.voteService.ListVotedFeatureIDs(r.Context(), userID)
	if err != nil {
		slog.Error("list votes failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	// nil スライスを空配列として返す
	if ids == nil {
		ids = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"feature_ids": ids})
}
