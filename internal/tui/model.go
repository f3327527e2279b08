package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/diogo/geminichat/internal/conversation"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
)

// TypingIndicator is shown exactly while a reply is outstanding
const TypingIndicator = "Bot is typing..."

// inputRows is the visible height of the draft editor
const inputRows = 2

type animationTickMsg time.Time

type (
	// replyMsg carries a finished remote call back into Update
	replyMsg struct {
		reply conversation.Reply
	}
	clipboardMsg struct {
		err error
	}
)

// Options configures the chat screen
type Options struct {
	ModelName string
	Markdown  render.Options
	Log       logr.Logger
	// CopyFunc replaces the system clipboard, mainly for tests
	CopyFunc func(string) error
}

// Model is the bubbletea model of the chat screen. Conversation state lives
// in a conversation.State; the widgets only mirror it.
type Model struct {
	ctx       context.Context
	ctrl      *conversation.Controller
	modelName string
	markdown  render.Options
	log       logr.Logger
	copyFn    func(string) error

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	state          conversation.State
	ready          bool
	notice         string
	animationFrame int

	width  int
	height int
}

// NewChatModel creates the chat screen around ctrl
func NewChatModel(ctx context.Context, ctrl *conversation.Controller, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(inputRows)
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys(conversation.KeyShiftEnter, conversation.KeyAltEnter, conversation.KeyCtrlJ),
		key.WithHelp("shift+enter", "newline"),
	)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	copyFn := opts.CopyFunc
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	markdown := opts.Markdown
	if markdown == (render.Options{}) {
		markdown = render.DefaultOptions()
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		modelName: opts.ModelName,
		markdown:  markdown,
		log:       log.WithName("tui"),
		copyFn:    copyFn,
		textarea:  ta,
		spinner:   s,
	}
}

// State returns the conversation as currently held by the screen
func (m Model) State() conversation.State {
	return m.state
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func animationTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		keyName := msg.String()
		switch {
		case keyName == "ctrl+c":
			return m, tea.Quit

		case keyName == "esc":
			// no cancellation: an outstanding call has to finish
			if !m.state.Busy {
				return m, tea.Quit
			}
			return m, nil

		case keyName == "ctrl+y":
			return m, m.copyLastReply()

		case conversation.IsSubmitKey(keyName):
			return m.submit()
		}

		m.notice = ""
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.state = m.state.UpdateDraft(m.textarea.Value())

	case replyMsg:
		m.state = m.ctrl.Resolve(m.state, msg.reply)
		m.updateViewport()
		m.viewport.GotoBottom()

	case clipboardMsg:
		if msg.err != nil {
			m.log.Error(msg.err, "clipboard copy failed")
			m.notice = "Clipboard unavailable"
		} else {
			m.notice = "Copied last reply"
		}

	case spinner.TickMsg:
		if m.state.Busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.state.Busy {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 4
	vpWidth := contentWidth - messagesAreaStyle.GetHorizontalPadding()

	// header, input panel and status bar each have one fixed layout
	headerHeight := 1 + headerStyle.GetVerticalFrameSize()
	inputHeight := 1 + inputRows + inputPanelStyle.GetVerticalFrameSize()
	statusHeight := 1 + statusBarStyle.GetVerticalFrameSize()

	vpHeight := height - headerHeight - inputHeight - statusHeight - messagesAreaStyle.GetVerticalFrameSize()
	if vpHeight < 5 {
		vpHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.updateViewport()
}

// scrollKeys limits the viewport to page keys so typing never scrolls
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}

// submit hands the textarea content to the controller. A rejected submit
// leaves everything as it was, including the draft.
func (m Model) submit() (tea.Model, tea.Cmd) {
	draft := m.textarea.Value()

	if !m.state.Busy && isExitCommand(draft) {
		return m, tea.Quit
	}

	next, turn := m.ctrl.Submit(m.state, draft)
	if turn == nil {
		return m, nil
	}

	m.state = next
	m.notice = ""
	m.animationFrame = 0
	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.execute(*turn),
		m.spinner.Tick,
		animationTick(),
	)
}

// execute runs the remote call off the event loop
func (m Model) execute(turn conversation.Turn) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return replyMsg{reply: ctrl.Execute(ctx, turn)}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	last, ok := m.state.LastBotMessage()
	if !ok {
		return nil
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return clipboardMsg{err: copyFn(last.Text)}
	}
}

func isExitCommand(draft string) bool {
	switch strings.ToLower(strings.TrimSpace(draft)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ Gemini Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	messagesContent := m.viewport.View()
	if len(m.state.Messages) == 0 {
		messagesContent = m.renderWelcome()
	}
	vpW, vpH := m.viewport.Width, m.viewport.Height
	messagesContent = lipgloss.NewStyle().
		Width(vpW).Height(vpH).
		MaxWidth(vpW).MaxHeight(vpH).
		Render(messagesContent)
	sections = append(sections, messagesAreaStyle.Width(contentWidth).Render(messagesContent))

	label := inputLabelStyle.Render("You")
	if m.state.Busy {
		label = m.renderTypingIndicator()
	}
	input := lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to Gemini Chat"),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
		"",
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderTypingIndicator() string {
	frame := m.animationFrame

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	return fmt.Sprintf("%s %s %s", m.spinner.View(), typingStyle.Render(TypingIndicator), dots)
}

// renderStatusBar always fits on one line; a notice takes precedence over
// the shortcuts that follow it
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Shift+Enter", "Newline"},
		{"Ctrl+Y", "Copy"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts)+1)
	if m.notice != "" {
		items = append(items, noticeStyle.Render(m.notice))
	}
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	bar := ansi.Truncate(strings.Join(items, "  │  "), width, "…")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport redraws the transcript
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.state.Messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderMessage(msg models.Message, width int) string {
	if msg.IsUser() {
		return userLabelStyle.Render("● You") + "\n" +
			userBubbleStyle.Width(width).Render(msg.Text)
	}
	rendered := render.MarkdownOrPlain(msg.Text, m.markdown.WithWidth(width-4))
	return assistantLabelStyle.Render("✦ Gemini") + "\n" +
		assistantBubbleStyle.Width(width).Render(rendered)
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(ctx context.Context, ctrl *conversation.Controller, opts Options) error {
	p := tea.NewProgram(
		NewChatModel(ctx, ctrl, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
