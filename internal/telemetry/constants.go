package telemetry

// DefaultCapacity is the number of tool break events the ring buffer keeps
const DefaultCapacity = 200

// Log messages
const (
	LogMsgPersistDropped = "Tool break event not persisted, queue full"
	LogMsgPersistFailed  = "Failed to persist tool break event"
)

// ErrMsgPersist wraps store failures in the persistence job
const ErrMsgPersist = "persist tool break for %s/%s: %w"
