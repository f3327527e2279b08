package conversation

// Key names as reported by the terminal layer (bubbletea's KeyMsg.String()).
const (
	KeyEnter      = "enter"
	KeyShiftEnter = "shift+enter"
	KeyAltEnter   = "alt+enter"
	KeyCtrlJ      = "ctrl+j"
)

// IsSubmitKey reports whether key submits the draft. Only a bare Enter does;
// Enter with a modifier inserts a newline.
func IsSubmitKey(key string) bool {
	return key == KeyEnter
}

// IsNewlineKey reports whether key inserts a literal newline into the draft.
// Most terminals cannot report Shift+Enter, so Alt+Enter and Ctrl+J are
// accepted as the same gesture.
func IsNewlineKey(key string) bool {
	switch key {
	case KeyShiftEnter, KeyAltEnter, KeyCtrlJ:
		return true
	}
	return false
}
