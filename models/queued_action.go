package models

// QueuedAction is a not-yet-confirmed toggle intent. It is what the action
// queue submits and what the durable retry store persists between restarts.
//
// TargetState is the desired end state, not a delta: replaying the same action
// twice converges to the same server state.
type QueuedAction struct {
	EntityID    string `json:"entity_id"`
	TargetState bool   `json:"target_state"`
	ActorID     string `json:"actor_id"`
	DeviceID    string `json:"device_id"`

	// Timestamp is the client clock at intent creation, in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// RetryCount is the number of retries already scheduled for this intent.
	RetryCount int `json:"retry_count"`
}
