package service

// EventPublisher はボード上の変化を購読者へ通知するインターフェース。
// 実装は internal/live の WebSocket ハブ。通知はベストエフォートで、
// 失敗してもサービスの結果には影響しない
type EventPublisher interface {
	PublishVote(appID, featureID string, votesCount int)
	PublishFeatureCreated(appID, featureID string)
	PublishStatusChanged(appID, featureID, status string)
}
