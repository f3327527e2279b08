package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Gemini.

Enter sends the message; Shift+Enter (or Alt+Enter / Ctrl+J where the
terminal cannot report Shift) inserts a newline. Ctrl+Y copies the last
reply. Type 'exit' or 'quit', or press Esc or Ctrl+C, to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	s, err := newSession(deps)
	if err != nil {
		return err
	}
	defer s.Close()

	tui.ApplyTheme(render.TUIThemeOrDefault(s.cfg.TUITheme))

	err = deps.RunChat(commandContext(cmd), s.ctrl, tui.Options{
		ModelName: s.client.GetModel().Name,
		Markdown:  markdownOptions(s.cfg),
		Log:       s.log,
		CopyFunc:  deps.Clipboard,
	})
	if err != nil {
		s.log.Error(err, "chat ended with error")
		return err
	}
	s.log.Info("chat ended")
	return nil
}

// markdownOptions builds reply rendering options. Without an explicit
// markdown.style the TUI theme picks the style.
func markdownOptions(cfg config.Config) render.Options {
	md := cfg.Markdown
	if md.Style == "" {
		md.Style = render.TUIThemeOrDefault(cfg.TUITheme).MarkdownStyle
	}
	return render.OptionsFromConfig(md)
}
