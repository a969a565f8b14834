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

// AuthHandler は匿名ボード ID の発行とセッション管理の HTTP ハンドラ
type AuthHandler struct {
	userService   service.UserService
	sessionSecret []byte
	secureCookies bool
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(userService service.UserService, sessionSecret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{userService: userService, sessionSecret: sessionSecret, secureCookies: secureCookies}
}

type registerRequest struct {
	Name string `json:"name"`
}

// Register は POST /api/auth/register を処理する。ユーザーを作成し、
// 署名付きセッションクッキーを発行する
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUserName) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_name"})
			return
		}
		slog.Error("register failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	token := auth.CreateSessionToken(user.ID, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

// Me は GET /api/me を処理する（認証必須）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_user"})
			return
		}
		slog.Error("load user failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	user.IsAdmin = auth.IsAdminFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

// Logout は POST /api/auth/logout を処理する。セッションクッキーを破棄する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
