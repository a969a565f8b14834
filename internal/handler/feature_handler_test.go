package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/featurevote/backend/internal/board"
	"github.com/featurevote/backend/internal/model"
	"github.com/featurevote/backend/internal/repository"
	"github.com/featurevote/backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// mockFeatureService — FeatureService のモック
// ---------------------------------------------------------------------------

type mockFeatureService struct {
	listFunc         func(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Feature, error)
	createFunc       func(ctx context.Context, feature *model.Feature) error
	updateStatusFunc func(ctx context.Context, id string, status model.FeatureStatus) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockFeatureService) List(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, appID, search, sort)
	}
	return &model.FeatureListResult{}, nil
}

func (m *mockFeatureService) GetByID(ctx context.Context, id string) (*model.Feature, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFeatureService) Create(ctx context.Context, feature *model.Feature) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, feature)
	}
	return nil
}

func (m *mockFeatureService) UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockFeatureService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newFeatureMux(h *FeatureHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /api/apps/{appID}/features", http.HandlerFunc(h.List))
	mux.Handle("POST /api/apps/{appID}/features", http.HandlerFunc(h.Create))
	mux.Handle("GET /api/features/{id}", http.HandlerFunc(h.Get))
	mux.Handle("PATCH /api/features/{id}/status", http.HandlerFunc(h.PatchStatus))
	mux.Handle("DELETE /api/features/{id}", http.HandlerFunc(h.Delete))
	return mux
}

// ---------------------------------------------------------------------------
// GET /api/apps/{appID}/features
// ---------------------------------------------------------------------------

func TestFeatureHandler_List_PassesSearchAndSort(t *testing.T) {
	var capturedAppID, capturedSearch string
	var capturedSort board.SortKey
	mock := &mockFeatureService{
		listFunc: func(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error) {
			capturedAppID = appID
			capturedSearch = search
			capturedSort = sort
			return &model.FeatureListResult{
				Features:   []*model.Feature{{ID: "feat-1", Title: "Dark Mode"}},
				EmptyState: board.NotEmpty.String(),
			}, nil
		},
	}
	mux := newFeatureMux(NewFeatureHandler(mock))

	req := httptest.NewRequest(http.MethodGet, "/api/apps/app-1/features?search=dark&sort=date", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if capturedAppID != "app-1" || capturedSearch != "dark" || capturedSort != board.SortByDate {
		t.Errorf("unexpected service call: app=%q search=%q sort=%v", capturedAppID, capturedSearch, capturedSort)
	}

	var resp model.FeatureListResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Features) != 1 || resp.Features[0].ID != "feat-1" {
		t.Errorf("unexpected features: %+v", resp.Features)
	}
}

func TestFeatureHandler_List_EmptyIsArray(t *testing.T) {
	mock := &mockFeatureService{
		listFunc: func(ctx context.Context, appID, search string, sort board.SortKey) (*model.FeatureListResult, error) {
			return &model.FeatureListResult{EmptyState: board.NoFeatures.String()}, nil
		},
	}
	mux := newFeatureMux(NewFeatureHandler(mock))

	req := httptest.NewRequest(http.MethodGet, "/api/apps/app-1/features", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, `"features":null`) {
		t.Errorf("features should be an empty array, got %s", body)
	}
	if !strings.Contains(body, `"no_features"`) {
		t.Errorf("expected empty_state no_features, got %s", body)
	}
}

// ---------------------------------------------------------------------------
// GET /api/features/{id}
// ---------------------------------------------------------------------------

func TestFeatureHandler_Get_NotFound(t *testing.T) {
	mux := newFeatureMux(NewFeatureHandler(&mockFeatureService{}))

	req := httptest.NewRequest(http.MethodGet, "/api/features/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/apps/{appID}/features
// ---------------------------------------------------------------------------

func TestFeatureHandler_Create_Success(t *testing.T) {
	var created *model.Feature
	mock := &mockFeatureService{
		createFunc: func(ctx context.Context, feature *model.Feature) error {
			feature.ID = "feat-new"
			created = feature
			return nil
		},
	}
	mux := newFeatureMux(NewFeatureHandler(mock))

	body := strings.NewReader(`{"title":"  Offline mode  ","description":"Work without network"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/apps/app-1/features", body)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatal("service was not called")
	}
	if created.Title != "Offline mode" {
		t.Errorf("title should be trimmed, got %q", created.Title)
	}
	if created.AppID != "app-1" || created.AuthorID != "user-1" {
		t.Errorf("unexpected ownership: app=%q author=%q", created.AppID, created.AuthorID)
	}
}

func TestFeatureHandler_Create_RequiresAuth(t *testing.T) {
	mux := newFeatureMux(NewFeatureHandler(&mockFeatureService{}))

	body := strings.NewReader(`{"title":"X"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/apps/app-1/features", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestFeatureHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":"   "}`},
		{"title too long", `{"title":"` + strings.Repeat("a", 201) + `"}`},
		{"description too long", `{"title":"ok","description":"` + strings.Repeat("b", 4001) + `"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockFeatureService{
				createFunc: func(ctx context.Context, feature *model.Feature) error {
					called = true
					return nil
				},
			}
			mux := newFeatureMux(NewFeatureHandler(mock))

			req := httptest.NewRequest(http.MethodPost, "/api/apps/app-1/features", strings.NewReader(tt.body))
			req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if called {
				t.Error("service should not be called on invalid input")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// PATCH /api/features/{id}/status, DELETE /api/features/{id}
// ---------------------------------------------------------------------------

func TestFeatureHandler_PatchStatus_AdminOnly(t *testing.T) {
	mux := newFeatureMux(NewFeatureHandler(&mockFeatureService{}))

	req := httptest.NewRequest(http.MethodPatch, "/api/features/feat-1/status", strings.NewReader(`{"status":"planned"}`))
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestFeatureHandler_PatchStatus_Admin(t *testing.T) {
	var capturedID string
	var capturedStatus model.FeatureStatus
	mock := &mockFeatureService{
		updateStatusFunc: func(ctx context.Context, id string, status model.FeatureStatus) error {
			capturedID = id
			capturedStatus = status
			return nil
		},
	}
	mux := newFeatureMux(NewFeatureHandler(mock))

	req := httptest.NewRequest(http.MethodPatch, "/api/features/feat-1/status", strings.NewReader(`{"status":"in_progress"}`))
	ctx := auth.WithUserID(req.Context(), "admin-1")
	ctx = auth.WithIsAdmin(ctx, true)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if capturedID != "feat-1" || capturedStatus != model.StatusInProgress {
		t.Errorf("unexpected service call: id=%q status=%q", capturedID, capturedStatus)
	}
}

func TestFeatureHandler_PatchStatus_RejectsUnknownStatus(t *testing.T) {
	mux := newFeatureMux(NewFeatureHandler(&mockFeatureService{}))

	for _, status := range []string{"bogus", "deleted"} {
		req := httptest.NewRequest(http.MethodPatch, "/api/features/feat-1/status", strings.NewReader(`{"status":"`+status+`"}`))
		ctx := auth.WithUserID(req.Context(), "admin-1")
		ctx = auth.WithIsAdmin(ctx, true)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %q: expected 400, got %d", status, rec.Code)
		}
	}
}

func TestFeatureHandler_Delete_AdminOnly(t *testing.T) {
	called := false
	mock := &mockFeatureService{
		deleteFunc: func(ctx context.Context, id string) error {
			called = true
			return nil
		},
	}
	mux := newFeatureMux(NewFeatureHandler(mock))

	req := httptest.NewRequest(http.MethodDelete, "/api/features/feat-1", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", rec.Code)
	}
	if called {
		t.Error("service should not be called")
	}

	ctx := auth.WithUserID(req.Context(), "admin-1")
	ctx = auth.WithIsAdmin(ctx, true)
	req = httptest.NewRequest(http.MethodDelete, "/api/features/feat-1", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", rec.Code)
	}
	if !called {
		t.Error("service should be called for admin")
	}
}
