// Package live broadcasts board changes (votes, new features, status
// changes) to WebSocket subscribers, keyed by app. Delivery is best
// effort: a subscriber whose buffer is full misses the event and is
// expected to refetch the list on reconnect.
package live

import "sync"

// Event は購読者へ配信されるボード上の変化
type Event struct {
	Type       string `json:"type"` // "vote" | "feature_created" | "status_changed"
	AppID      string `json:"app_id"`
	FeatureID  string `json:"feature_id"`
	VotesCount int    `json:"votes_count,omitempty"`
	Status     string `json:"status,omitempty"`
}

const subscriberBuffer = 16

type subscriber struct {
	ch chan Event
}

// Hub はアプリ単位の購読者レジストリ
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{} // appID → subscribers
}

// NewHub は Hub を生成する
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe はアプリのイベントチャネルと購読解除関数を返す
func (h *Hub) Subscribe(appID string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[appID] == nil {
		h.subs[appID] = make(map[*subscriber]struct{})
	}
	h.subs[appID][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[appID]; ok {
			if _, ok := set[sub]; ok {
				delete(set, sub)
				close(sub.ch)
			}
			if len(set) == 0 {
				delete(h.subs, appID)
			}
		}
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// SubscriberCount はアプリの現在の購読者数を返す
func (h *Hub) SubscriberCount(appID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[appID])
}

// PublishVote は投票の適用を通知する
func (h *Hub) PublishVote(appID, featureID string, votesCount int) {
	h.publish(appID, Event{Type: "vote", AppID: appID, FeatureID: featureID, VotesCount: votesCount})
}

// PublishFeatureCreated は新規フィーチャーの作成を通知する
func (h *Hub) PublishFeatureCreated(appID, featureID string) {
	h.publish(appID, Event{Type: "feature_created", AppID: appID, FeatureID: featureID})
}

// PublishStatusChanged はステータス変更を通知する
func (h *Hub) PublishStatusChanged(appID, featureID, status string) {
	h.publish(appID, Event{Type: "status_changed", AppID: appID, FeatureID: featureID, Status: status})
}

// publish はノンブロッキングで配信する。バッファが満杯の購読者は
// そのイベントを取りこぼす
func (h *Hub) publish(appID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[appID] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
