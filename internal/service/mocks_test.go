package service

import (
	"context"

	"github.com/featurevote/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockFeatureRepository — FeatureRepository のモック
// ---------------------------------------------------------------------------

type mockFeatureRepository struct {
	listByAppIDFunc  func(ctx context.Context, appID string) ([]*model.Feature, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Feature, error)
	createFunc       func(ctx context.Context, feature *model.Feature) error
	updateStatusFunc func(ctx context.Context, id string, status model.FeatureStatus) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockFeatureRepository) ListByAppID(ctx context.Context, appID string) ([]*model.Feature, error) {
	if m.listByAppIDFunc != nil {
		return m.listByAppIDFunc(ctx, appID)
	}
	return nil, nil
}

func (m *mockFeatureRepository) GetByID(ctx context.Context, id string) (*model.Feature, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Feature{ID: id}, nil
}

func (m *mockFeatureRepository) Create(ctx context.Context, feature *model.Feature) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, feature)
	}
	return nil
}

func (m *mockFeatureRepository) UpdateStatus(ctx context.Context, id string, status model.FeatureStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockFeatureRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockVoteRepository — VoteRepository のモック
// ---------------------------------------------------------------------------

type mockVoteRepository struct {
	voteFunc                func(ctx context.Context, userID, featureID string) (bool, error)
	hasVotedFunc            func(ctx context.Context, userID, featureID string) (bool, error)
	listVotedFeatureIDsFunc func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockVoteRepository) Vote(ctx context.Context, userID, featureID string) (bool, error) {
	if m.voteFunc != nil {
		return m.voteFunc(ctx, userID, featureID)
	}
	return true, nil
}

func (m *mockVoteRepository) HasVoted(ctx context.Context, userID, featureID string) (bool, error) {
	if m.hasVotedFunc != nil {
		return m.hasVotedFunc(ctx, userID, featureID)
	}
	return false, nil
}

func (m *mockVoteRepository) ListVotedFeatureIDs(ctx context.Context, userID string) ([]string, error) {
	if m.listVotedFeatureIDsFunc != nil {
		return m.listVotedFeatureIDsFunc(ctx, userID)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// mockCommentRepository — CommentRepository のモック
// ---------------------------------------------------------------------------

type mockCommentRepository struct {
	listByFeatureIDFunc func(ctx context.Context, featureID string) ([]*model.Comment, error)
	createFunc          func(ctx context.Context, comment *model.Comment) error
	deleteFunc          func(ctx context.Context, id string) error
}

func (m *mockCommentRepository) ListByFeatureID(ctx context.Context, featureID string) ([]*model.Comment, error) {
	if m.listByFeatureIDFunc != nil {
		return m.listByFeatureIDFunc(ctx, featureID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockUserRepository — UserRepository のモック
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
	createFunc   func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockEvents / mockMetrics — 通知とカウンタの記録用
// ---------------------------------------------------------------------------

type publishedEvent struct {
	kind       string
	appID      string
	featureID  string
	votesCount int
	status     string
}

type mockEvents struct {
	published []publishedEvent
}

func (m *mockEvents) PublishVote(appID, featureID string, votesCount int) {
	m.published = append(m.published, publishedEvent{kind: "vote", appID: appID, featureID: featureID, votesCount: votesCount})
}

func (m *mockEvents) PublishFeatureCreated(appID, featureID string) {
	m.published = append(m.published, publishedEvent{kind: "feature_created", appID: appID, featureID: featureID})
}

func (m *mockEvents) PublishStatusChanged(appID, featureID, status string) {
	m.published = append(m.published, publishedEvent{kind: "status_changed", appID: appID, featureID: featureID, status: status})
}

type mockMetrics struct {
	applied    int
	duplicates int
}

func (m *mockMetrics) VoteApplied()   { m.applied++ }
func (m *mockMetrics) VoteDuplicate() { m.duplicates++ }
