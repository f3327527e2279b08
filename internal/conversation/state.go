// Package conversation holds the chat transcript state and the rules for
// moving it through a turn: submit, wait for the model, append the answer.
//
// Transitions are value methods on State that return a new State, so the UI
// layer only stores the result and tests need no rendering.
package conversation

import (
	"strings"

	"github.com/diogo/geminichat/internal/models"
)

// FallbackMessage is shown as the bot's answer whenever the remote call fails
const FallbackMessage = "Sorry, I encountered an error. Please try again."

// State is the conversation held by the UI
type State struct {
	// Messages is append-only for the session
	Messages []models.Message
	// Draft is the unsent input
	Draft string
	// Busy is true exactly while a remote call is outstanding
	Busy bool
}

// UpdateDraft replaces the draft verbatim
func (s State) UpdateDraft(text string) State {
	s.Draft = text
	return s
}

// CanSubmit reports whether draft would be accepted by Submit
func (s State) CanSubmit(draft string) bool {
	return !s.Busy && strings.TrimSpace(draft) != ""
}

// Submit appends draft as a user message, clears the draft and marks the
// state busy. It returns the state unchanged and false when a call is
// already outstanding or draft is blank.
func (s State) Submit(draft string) (State, bool) {
	if !s.CanSubmit(draft) {
		return s, false
	}
	s.Messages = appendMessage(s.Messages, models.UserMessage(draft))
	s.Draft = ""
	s.Busy = true
	return s, true
}

// Resolve ends the outstanding turn. A nil err appends text as the bot's
// answer; any error appends FallbackMessage instead. Busy is cleared last.
// A state that is not busy has no turn to resolve and is returned as is.
func (s State) Resolve(text string, err error) State {
	if !s.Busy {
		return s
	}
	if err != nil {
		s.Messages = appendMessage(s.Messages, models.BotMessage(FallbackMessage))
	} else {
		s.Messages = appendMessage(s.Messages, models.BotMessage(text))
	}
	s.Busy = false
	return s
}

// LastBotMessage returns the most recent bot message, if any
func (s State) LastBotMessage() (models.Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Sender == models.SenderBot {
			return s.Messages[i], true
		}
	}
	return models.Message{}, false
}

// appendMessage copies before appending so earlier State values never
// observe later messages through a shared backing array.
func appendMessage(msgs []models.Message, m models.Message) []models.Message {
	out := make([]models.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
