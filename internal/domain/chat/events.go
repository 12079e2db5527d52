package chat

const (
	EventNewMessage = "new_message"
	EventError      = "error"
	EventPong       = "pong"
)

// Event is pushed to live listeners of a request.
type Event struct {
	Type      string `json:"type"`
	RequestID int64  `json:"request_id,omitempty"`
	Message   *Entry `json:"message,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewMessageEvent(requestID int64, e *Entry) *Event {
	return &Event{Type: EventNewMessage, RequestID: requestID, Message: e}
}

func NewErrorEvent(code, message string) *Event {
	return &Event{Type: EventError, Code: code, Error: message}
}
