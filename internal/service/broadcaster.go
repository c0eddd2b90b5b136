package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToHost(assessmentID string, msgType string, payload interface{})
	BroadcastToSubject(assessmentID string, msgType string, payload interface{})
	DisconnectAssessment(assessmentID string)
}
