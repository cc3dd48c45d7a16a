package models

// UserEvent represents an account lifecycle event published to Kafka.
type UserEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) when the event occurred.
	UserID    string `json:"user_id"`   // UserID is the identifier of the affected user.
	Operation string `json:"operation"` // Operation is the event type, e.g. "register", "login", "logout", "refresh", "change_password".
}
