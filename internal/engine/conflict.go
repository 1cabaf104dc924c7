package engine

import "sync"

type localAction struct {
	timestamp int64
	deviceID  string
}

// ConflictResolver remembers the latest locally initiated action per entity
// and decides whether a pushed server update may overwrite local state.
type ConflictResolver struct {
	mu      sync.Mutex
	actions map[string]localAction
}

func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{actions: make(map[string]localAction)}
}

// RecordLocalAction records an action on entityID issued at timestamp (Unix
// ms) by deviceID. Older timestamps never replace a newer record.
func (r *ConflictResolver) RecordLocalAction(entityID string, timestamp int64, deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.actions[entityID]; ok && last.timestamp > timestamp {
		return
	}
	r.actions[entityID] = localAction{timestamp: timestamp, deviceID: deviceID}
}

// ShouldAcceptPush reports whether a push stamped pushTimestamp may overwrite
// the local state of entityID.
//
// A push is accepted when no local action is recorded or when it is newer
// than the last one. A push carrying exactly the timestamp and device id of
// the recorded action is the server echoing that action back and is accepted
// as well.
func (r *ConflictResolver) ShouldAcceptPush(entityID string, pushTimestamp int64, pushDeviceID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.actions[entityID]
	if !ok || pushTimestamp > last.timestamp {
		return true
	}

	return pushTimestamp == last.timestamp && pushDeviceID != "" && pushDeviceID == last.deviceID
}

// Forget drops the record of entityID.
func (r *ConflictResolver) Forget(entityID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, entityID)
}
