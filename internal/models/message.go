package models

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the chat transcript. It is never modified after
// being appended.
type Message struct {
	Text   string
	Sender Sender
}

// UserMessage creates a message authored by the user
func UserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser}
}

// BotMessage creates a message authored by the bot
func BotMessage(text string) Message {
	return Message{Text: text, Sender: SenderBot}
}

// IsUser reports whether the user wrote the message
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
