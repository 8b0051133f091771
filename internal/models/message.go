package models

// Message senders. The conversation log only ever contains these two.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message represents a single chat turn in the conversation log
type Message struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// NewUserMessage creates a user message
func NewUserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser}
}

// NewAssistantMessage creates an assistant message
func NewAssistantMessage(text string) Message {
	return Message{Text: text, Sender: SenderAssistant}
}
