package models

import "testing"

func TestModelFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "gemini-2.5-flash"},
		{"fast", "gemini-2.5-flash"},
		{"lite", "gemini-2.5-flash-lite"},
		{"pro", "gemini-2.5-pro"},
		{"gemini-2.5-pro", "gemini-2.5-pro"},
		{"models/gemini-2.5-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-pro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelFromName(tt.name).Name; got != tt.want {
				t.Errorf("ModelFromName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestGenerateEndpoint(t *testing.T) {
	got := Model25Flash.GenerateEndpoint()
	want := "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	if got != want {
		t.Errorf("GenerateEndpoint() = %s, want %s", got, want)
	}
}

func TestMessageConstructors(t *testing.T) {
	u := UserMessage("Hello")
	if u.Sender != SenderUser || u.Text != "Hello" || !u.IsUser() {
		t.Errorf("unexpected user message: %+v", u)
	}

	b := BotMessage("Hi there!")
	if b.Sender != SenderBot || b.Text != "Hi there!" || b.IsUser() {
		t.Errorf("unexpected bot message: %+v", b)
	}
}
