package entity

const (
	MessageTypeText        = "text"
	MessageTypeSystem      = "system"
	MessageTypeQuickAction = "quick_action"
)

// ChatMessage is one immutable entry of the room's message history.
type ChatMessage struct {
	MessageID  string    `json:"message_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Message    string    `json:"message"`
	Timestamp  float64   `json:"timestamp"`
	Type       string    `json:"type"`
	ReplyTo    *ReplyRef `json:"reply_to,omitempty"`
}

func (that *ChatMessage) IsSystem() bool {
	return that.Type == MessageTypeSystem
}

// ReplyRef points at the message a reply quotes. The snippet carries at
// most the first 50 characters of the quoted text.
type ReplyRef struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// ChatSettings are the persisted per-user chat preferences.
type ChatSettings struct {
	EnterToSend  bool `json:"enterToSend"`
	SoundEnabled bool `json:"soundEnabled"`
}

// DefaultChatSettings matches a fresh install.
func DefaultChatSettings() ChatSettings {
	return ChatSettings{EnterToSend: true, SoundEnabled: true}
}
