package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/conversation"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

type testEnv struct {
	deps     *Dependencies
	client   *api.MockGeminiClient
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	home     string
	copied   []string
	chatOpts *tui.Options
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		client: &api.MockGeminiClient{
			Model:              models.DefaultModel,
			GenerateContentVal: &models.ModelOutput{Text: "Hi there!"},
		},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		home:   t.TempDir(),
	}
	t.Setenv("HOME", env.home)
	t.Setenv("GLAMOUR_STYLE", "")

	d := NewDependencies()
	d.Stdin = strings.NewReader("")
	d.Stdout = env.stdout
	d.Stderr = env.stderr
	d.LoadCredentials = func() (config.Credentials, error) {
		return config.Credentials{APIKey: "test-key", Source: config.EnvAPIKey}, nil
	}
	d.NewClient = func(creds config.Credentials, cfg config.Config, log logr.Logger) (api.GeminiClientInterface, error) {
		env.client.Model = models.ModelFromName(cfg.DefaultModel)
		return env.client, nil
	}
	d.RunChat = func(ctx context.Context, ctrl *conversation.Controller, opts tui.Options) error {
		env.chatOpts = &opts
		return nil
	}
	d.Clipboard = func(s string) error {
		env.copied = append(env.copied, s)
		return nil
	}
	d.IsTerminal = func() bool { return false }
	d.StdinIsPipe = func() bool { return false }
	d.TerminalWidth = func() int { return 80 }
	env.deps = d

	old := deps
	deps = d
	resetFlags()
	t.Cleanup(func() {
		deps = old
		resetFlags()
	})
	return env
}

func resetFlags() {
	modelFlag = ""
	logFileFlag = ""
	verboseFlag = false
	outputFlag = ""
	fileFlag = ""
	rawFlag = false
	_ = rootCmd.Flags().Set("version", "false")
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func (env *testEnv) logContents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(env.home, ".geminichat", "geminichat.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return string(data)
}

func TestAsk_RawOutput(t *testing.T) {
	env := newTestEnv(t)

	if err := execute("ask", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	if got := env.stdout.String(); got != "Hi there!\n" {
		t.Errorf("expected raw reply, got %q", got)
	}
	if env.client.LastPrompt != "Hello" {
		t.Errorf("expected prompt 'Hello', got %q", env.client.LastPrompt)
	}
	if !env.client.CloseCalled {
		t.Error("client should be closed")
	}
	if !strings.Contains(env.logContents(t), "session started") {
		t.Error("expected session start in log")
	}
}

func TestAsk_FailurePrintsFallback(t *testing.T) {
	env := newTestEnv(t)
	env.client.GenerateContentErr = apierrors.NewAPIErrorWithBody(503, "generate", "overloaded", "")

	err := execute("ask", "Hello")

	if !errors.Is(err, errTurnFailed) {
		t.Fatalf("expected errTurnFailed, got %v", err)
	}
	if got := env.stdout.String(); got != conversation.FallbackMessage+"\n" {
		t.Errorf("expected fallback message, got %q", got)
	}
	if strings.Contains(env.stdout.String(), "overloaded") {
		t.Error("error detail must not reach the reply")
	}
	log := env.logContents(t)
	if !strings.Contains(log, "remote call failed") || !strings.Contains(log, "503") {
		t.Errorf("expected failure with status in log, got:\n%s", log)
	}
}

func TestAsk_PromptSources(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		env := newTestEnv(t)
		env.deps.StdinIsPipe = func() bool { return true }
		env.deps.Stdin = strings.NewReader("from stdin\n")

		if err := execute("ask"); err != nil {
			t.Fatalf("ask failed: %v", err)
		}
		if env.client.LastPrompt != "from stdin\n" {
			t.Errorf("unexpected prompt %q", env.client.LastPrompt)
		}
	})

	t.Run("file", func(t *testing.T) {
		env := newTestEnv(t)
		path := filepath.Join(t.TempDir(), "prompt.md")
		if err := os.WriteFile(path, []byte("from file"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := execute("ask", "-f", path, "ignored"); err != nil {
			t.Fatalf("ask failed: %v", err)
		}
		if env.client.LastPrompt != "from file" {
			t.Errorf("file should win over the argument, got %q", env.client.LastPrompt)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		newTestEnv(t)
		err := execute("ask", "-f", filepath.Join(t.TempDir(), "nope.md"))
		if err == nil || !strings.Contains(err.Error(), "failed to read file") {
			t.Errorf("expected read error, got %v", err)
		}
	})
}

func TestAsk_BlankPromptRejected(t *testing.T) {
	for _, args := range [][]string{{"ask"}, {"ask", "   "}} {
		env := newTestEnv(t)

		err := execute(args...)

		if !errors.Is(err, apierrors.ErrEmptyPrompt) {
			t.Errorf("%v: expected ErrEmptyPrompt, got %v", args, err)
		}
		if env.client.GenerateCalls != 0 {
			t.Errorf("%v: remote must not be called", args)
		}
	}
}

func TestAsk_OutputFile(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(t.TempDir(), "reply.md")

	if err := execute("ask", "-o", out, "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "Hi there!" {
		t.Errorf("unexpected file contents %q", data)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", env.stdout.String())
	}
}

func TestAsk_DecoratedOnTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.deps.IsTerminal = func() bool { return true }
	env.client.GenerateContentVal = &models.ModelOutput{Text: "**bold** answer"}

	if err := execute("ask", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	out := env.stdout.String()
	if !strings.Contains(out, "Gemini") || !strings.Contains(out, "answer") {
		t.Errorf("expected labelled reply, got %q", out)
	}
	if strings.Contains(out, "**bold**") {
		t.Errorf("markdown should be rendered, got %q", out)
	}
	if !strings.Contains(env.stderr.String(), "Done") {
		t.Errorf("expected spinner success on stderr, got %q", env.stderr.String())
	}
}

func TestAsk_RawFlagOnTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.deps.IsTerminal = func() bool { return true }

	if err := execute("ask", "--raw", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if env.stdout.String() != "Hi there!\n" {
		t.Errorf("expected raw output, got %q", env.stdout.String())
	}
	if env.stderr.Len() != 0 {
		t.Errorf("raw mode should not decorate stderr, got %q", env.stderr.String())
	}
}

func TestAsk_CopyToClipboard(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.CopyToClipboard = true
		return cfg, nil
	}

	if err := execute("ask", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if len(env.copied) != 1 || env.copied[0] != "Hi there!" {
		t.Errorf("expected reply copied, got %v", env.copied)
	}
}

func TestAsk_ClipboardFailureLoggedInRawMode(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.CopyToClipboard = true
		return cfg, nil
	}
	env.deps.Clipboard = func(string) error {
		return errors.New("no display")
	}

	if err := execute("ask", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if env.stderr.Len() != 0 {
		t.Errorf("raw mode must keep stderr quiet, got %q", env.stderr.String())
	}
	log := env.logContents(t)
	if !strings.Contains(log, "clipboard copy failed") || !strings.Contains(log, "no display") {
		t.Errorf("expected clipboard failure in log, got %q", log)
	}
}

func TestAsk_ModelFlag(t *testing.T) {
	env := newTestEnv(t)

	if err := execute("ask", "-m", "pro", "Hello"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if env.client.Model.Name != models.Model25Pro.Name {
		t.Errorf("expected %s, got %s", models.Model25Pro.Name, env.client.Model.Name)
	}
}

func TestRoot_StartsChat(t *testing.T) {
	env := newTestEnv(t)

	if err := execute(); err != nil {
		t.Fatalf("root failed: %v", err)
	}
	if env.chatOpts == nil {
		t.Fatal("expected the chat screen to run")
	}
	if env.chatOpts.ModelName != models.DefaultModel.Name {
		t.Errorf("unexpected model %q", env.chatOpts.ModelName)
	}
	if env.chatOpts.CopyFunc == nil {
		t.Error("expected clipboard to be wired")
	}
}

func TestChat_ThemeSetsMarkdownStyle(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(render.EnvStyle, "")
	env.deps.LoadConfig = func() (config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.TUITheme = "light"
		return cfg, nil
	}

	if err := execute("chat"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if env.chatOpts.Markdown.Style != "light" {
		t.Errorf("expected markdown style from theme, got %q", env.chatOpts.Markdown.Style)
	}
}

func TestMarkdownOptions(t *testing.T) {
	t.Setenv(render.EnvStyle, "")

	tests := []struct {
		name  string
		theme string
		style string
		want  string
	}{
		{"default theme", "", "", render.StyleTokyoNight},
		{"light theme", "light", "", render.StyleLight},
		{"nord theme", "nord", "", render.StyleDark},
		{"explicit style wins", "light", "notty", "notty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.TUITheme = tt.theme
			cfg.Markdown.Style = tt.style

			if got := markdownOptions(cfg).Style; got != tt.want {
				t.Errorf("expected style %q, got %q", tt.want, got)
			}
		})
	}
}

func TestChat_ErrorPropagates(t *testing.T) {
	env := newTestEnv(t)
	env.deps.RunChat = func(ctx context.Context, ctrl *conversation.Controller, opts tui.Options) error {
		return errors.New("terminal gone")
	}

	if err := execute("chat"); err == nil || err.Error() != "terminal gone" {
		t.Errorf("expected terminal error, got %v", err)
	}
	if !strings.Contains(env.logContents(t), "chat ended with error") {
		t.Error("expected error in log")
	}
}

func TestRoot_Version(t *testing.T) {
	env := newTestEnv(t)

	if err := execute("--version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "geminichat "+Version) {
		t.Errorf("unexpected version output %q", env.stdout.String())
	}
	if env.chatOpts != nil {
		t.Error("version must not start the chat")
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	newTestEnv(t)
	if err := execute("hello"); err == nil {
		t.Error("expected unknown command error")
	}
}

func TestNewSession_MissingKeyIsLogged(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadCredentials = func() (config.Credentials, error) {
		return config.Credentials{}, nil
	}

	s, err := newSession(env.deps)
	if err != nil {
		t.Fatalf("missing key must not fail startup: %v", err)
	}
	s.Close()

	if !strings.Contains(env.logContents(t), "no API key configured") {
		t.Error("expected missing key diagnostic")
	}
}

func TestNewSession_BrokenConfigUsesDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("bad json")
	}

	s, err := newSession(env.deps)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer s.Close()

	if s.cfg.DefaultModel != config.DefaultConfig().DefaultModel {
		t.Errorf("expected default model, got %q", s.cfg.DefaultModel)
	}
}

func TestNewSession_FlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)
	logPath := filepath.Join(t.TempDir(), "custom.log")
	modelFlag = "gemini-2.5-flash-lite"
	logFileFlag = logPath
	verboseFlag = true

	s, err := newSession(env.deps)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	s.Close()

	if s.cfg.DefaultModel != "gemini-2.5-flash-lite" || !s.cfg.Verbose || s.logPath != logPath {
		t.Errorf("flags not applied: %+v", s.cfg)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("expected log at %s: %v", logPath, err)
	}
}

func TestNewSession_CredentialError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadCredentials = func() (config.Credentials, error) {
		return config.Credentials{}, errors.New("unreadable .env")
	}

	if _, err := newSession(env.deps); err == nil {
		t.Error("expected credential error")
	}
}
