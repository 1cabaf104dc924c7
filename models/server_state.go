package models

import "fmt"

// ServerState is the authoritative state returned by the server after a toggle
// submission.
type ServerState struct {
	IsLiked         bool  `json:"is_liked"`
	Count           int64 `json:"count"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// PushUpdate is an out-of-band state change delivered by the server, caused by
// another user or another device of the same user.
type PushUpdate struct {
	EntityID        string `json:"entity_id"`
	IsLiked         bool   `json:"is_liked"`
	Count           int64  `json:"count"`
	ServerTimestamp int64  `json:"server_timestamp"`

	// DeviceID identifies the device whose action produced the update, if the
	// server knows it. Empty for updates caused by other users.
	DeviceID string `json:"device_id,omitempty"`
}

// SubmitRequest is the wire shape of a toggle submission.
type SubmitRequest struct {
	EntityID      string `json:"entity_id"`
	TargetIsLiked bool   `json:"target_is_liked"`
	ActorID       string `json:"actor_id"`
	DeviceID      string `json:"device_id"`
	Timestamp     int64  `json:"timestamp"`
}

// NewSubmitRequest builds the submission for a queued action.
func NewSubmitRequest(action QueuedAction) SubmitRequest {
	return SubmitRequest{
		EntityID:      action.EntityID,
		TargetIsLiked: action.TargetState,
		ActorID:       action.ActorID,
		DeviceID:      action.DeviceID,
		Timestamp:     action.Timestamp,
	}
}

// IdempotencyKey identifies the intent on the server so that a retried request
// whose first attempt succeeded but lost its response is not applied twice.
func (r SubmitRequest) IdempotencyKey() string {
	return fmt.Sprintf("%s:%s:%d", r.EntityID, r.DeviceID, r.Timestamp)
}
