package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/wtproj/internal/errs"
)

// Confirmer asks a yes/no question.
//
// Confirm returns false for "no" and for an empty answer. A prompt the user
// aborted (esc, ctrl+c) returns errs.ErrDeclined.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// New returns a TTY confirmer when in is a terminal and a line confirmer
// otherwise.
func New(in *os.File, out io.Writer) Confirmer {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &TTY{In: in, Out: out}
	}
	return NewLine(in, out)
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			// Default to no
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s [y/N] ", m.prompt))
}

// TTY is an interactive single-key confirmation prompt.
type TTY struct {
	In  io.Reader
	Out io.Writer
}

func (t *TTY) Confirm(ctx context.Context, question string) (bool, error) {
	p := tea.NewProgram(confirmModel{prompt: question},
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, errs.ErrDeclined
	}
	return m.confirmed, nil
}

// Line reads the answer as a line of text. Only "y" and "yes" confirm.
// End of input counts as "no".
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a line confirmer. The reader is buffered once so that
// consecutive prompts consume consecutive lines.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(l.out, "%s [y/N] ", question)

	answer, err := l.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if err == io.EOF && answer == "" {
		fmt.Fprintln(l.out)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Static answers every question with the next value of Answers and records
// the questions. Once Answers is exhausted it answers "no".
type Static struct {
	Answers   []bool
	Questions []string
}

func (s *Static) Confirm(_ context.Context, question string) (bool, error) {
	s.Questions = append(s.Questions, question)
	if len(s.Answers) == 0 {
		return false, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
