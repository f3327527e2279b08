package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/conversation"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/render"
)

var (
	outputFlag string
	fileFlag   string
	rawFlag    bool
)

var errTurnFailed = errors.New("request failed")

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Send a single prompt and print the reply",
	Long: `Send one prompt to Gemini and print the reply.

The prompt comes from the argument, from --file, or from stdin. When stdout
is not a terminal, or with --raw, the reply is printed as plain text.
A failed request prints the usual apology and exits non-zero; details go to
the log file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPrompt(args)
		if err != nil {
			return err
		}
		return runAsk(cmd, prompt)
	},
}

func init() {
	askCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the reply to a file")
	askCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the prompt from a file")
	askCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the reply without formatting")
}

// readPrompt picks the prompt from --file, the argument or piped stdin, in
// that order
func readPrompt(args []string) (string, error) {
	var prompt string
	switch {
	case fileFlag != "":
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		prompt = string(data)
	case len(args) > 0:
		prompt = args[0]
	case deps.StdinIsPipe():
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		prompt = string(data)
	}

	if strings.TrimSpace(prompt) == "" {
		return "", apierrors.ErrEmptyPrompt
	}
	return prompt, nil
}

// runAsk drives one turn through the same controller the chat screen uses
func runAsk(cmd *cobra.Command, prompt string) error {
	s, err := newSession(deps)
	if err != nil {
		return err
	}
	defer s.Close()

	raw := rawFlag || !deps.IsTerminal()
	s.log.V(1).Info("ask", "prompt", truncate(prompt, 60), "raw", raw)

	var spin *spinner
	if !raw {
		spin = newSpinner(deps.Stderr, "Generating response")
		spin.start()
	}

	state, turn := s.ctrl.Submit(conversation.State{}, prompt)
	if turn == nil {
		if spin != nil {
			spin.stopWithError()
		}
		return apierrors.ErrEmptyPrompt
	}
	reply := s.ctrl.Execute(commandContext(cmd), *turn)
	state = s.ctrl.Resolve(state, reply)

	if !raw {
		if reply.Err != nil {
			spin.stopWithError()
			fmt.Fprintln(deps.Stderr, formatErrorMessage(reply.Err, "Generation failed"))
		} else {
			spin.stopWithSuccess(fmt.Sprintf("Done in %s", reply.Elapsed.Round(time.Millisecond)))
		}
	}

	last, _ := state.LastBotMessage()
	if err := writeReply(s, last.Text, raw); err != nil {
		return err
	}

	if reply.Err != nil {
		return fmt.Errorf("%w (details in %s)", errTurnFailed, s.logPath)
	}

	if s.cfg.CopyToClipboard {
		copyReply(s.log, last.Text, raw)
	}
	return nil
}

func writeReply(s *session, text string, raw bool) error {
	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !raw {
			msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", outputFlag),
			)
			fmt.Fprintln(deps.Stderr, msg)
		}
		return nil
	}

	if raw {
		fmt.Fprintln(deps.Stdout, text)
		return nil
	}

	bubbleWidth, contentWidth := bubbleWidths(deps.TerminalWidth())
	opts := markdownOptions(s.cfg).WithWidth(contentWidth)
	rendered := render.MarkdownOrPlain(text, opts)

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Gemini"))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
	return nil
}

func copyReply(log logr.Logger, text string, raw bool) {
	err := deps.Clipboard(text)
	if err != nil {
		log.Error(err, "clipboard copy failed")
	}
	if raw {
		return
	}
	if err != nil {
		warn := lipgloss.NewStyle().Foreground(colorWarning).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(deps.Stderr, warn)
		return
	}
	fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}
