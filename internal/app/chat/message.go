package chat

import (
	"encoding/json"
	"time"
)

// Inbound events, sent by the browser widget.
const (
	EventJoinChat    = "join-chat"
	EventSendMessage = "send-message"
	EventTyping      = "typing"
	EventAdminAction = "admin-action"
)

// Outbound events, sent by the hub.
const (
	EventChatMessage = "chat-message"
	EventChatHistory = "chat-history"
	EventUserTyping  = "user-typing"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
	EventOnlineUsers = "online-users"
)

// ActionGetOnlineUsers is the only admin-action the hub answers.
const ActionGetOnlineUsers = "get-online-users"

const (
	// SystemSender is the sender name of hub-generated messages.
	SystemSender = "System"

	// SystemMessageID is the id of the welcome message, which is never buffered.
	SystemMessageID = "system"

	WelcomeText   = "Welcome to ShineSmile chat! How can we help you today?"
	AnonymousName = "Anonymous"
)

// Frame is the envelope of every WebSocket text frame in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeFrame(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// Participant is a joined chat connection.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"timestamp"`
}

// Message is a chat line as buffered and broadcast.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	IsSystem  bool      `json:"isSystem,omitempty"`
}

// JoinPayload is the data of join-chat.
type JoinPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// SendPayload is the data of send-message.
type SendPayload struct {
	Message string `json:"message"`
}

// AdminActionPayload is the data of admin-action.
type AdminActionPayload struct {
	Type string `json:"type"`
}

// TypingPayload is the data of user-typing.
type TypingPayload struct {
	User     string `json:"user"`
	IsTyping bool   `json:"isTyping"`
}

// PresencePayload is the data of user-joined and user-left.
type PresencePayload struct {
	User    Participant `json:"user"`
	Message string      `json:"message"`
}
