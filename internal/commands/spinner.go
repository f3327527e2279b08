package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	spinners "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	spinnerFrameStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	spinnerLabelStyle = lipgloss.NewStyle().Foreground(colorText)
)

// spinner redraws a single status line on w until it is stopped. ask runs it
// on stderr so stdout only ever carries the reply.
type spinner struct {
	w     io.Writer
	label string
	kind  spinners.Spinner

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newSpinner(w io.Writer, label string) *spinner {
	return &spinner{
		w:     w,
		label: label,
		kind:  spinners.Dot,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (s *spinner) start() {
	go s.run()
}

func (s *spinner) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.kind.FPS)
	defer ticker.Stop()

	fmt.Fprint(s.w, ansi.HideCursor)
	defer fmt.Fprint(s.w, "\r"+ansi.EraseEntireLine+ansi.ShowCursor)

	for frame := 0; ; frame++ {
		glyph := s.kind.Frames[frame%len(s.kind.Frames)]
		fmt.Fprintf(s.w, "\r%s%s %s", ansi.EraseEntireLine,
			spinnerFrameStyle.Render(glyph), spinnerLabelStyle.Render(s.label))

		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

// halt stops the animation and waits until the line is cleared
func (s *spinner) halt() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *spinner) stopWithSuccess(message string) {
	s.halt()
	fmt.Fprintln(s.w, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ "+message))
}

func (s *spinner) stopWithError() {
	s.halt()
}
