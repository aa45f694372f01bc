package service

import "github.com/google/uuid"

// Notifier pushes a typed message to every live connection of a user.
// Implemented by the websocket hub.
type Notifier interface {
	Send(userID uuid.UUID, msgType string, data interface{})
}

const (
	MessageFocus           = "focus"
	MessageFocusCompleted  = "focus_completed"
	MessageSessionRecorded = "session_recorded"
	MessageActivity        = "activity"
)

type nopNotifier struct{}

func (nopNotifier) Send(uuid.UUID, string, interface{}) {}
