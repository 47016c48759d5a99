package prompt

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	if len(key) == 1 {
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

func TestConfirmModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		confirmed bool
		done      bool
		cancelled bool
		wantCmd   bool
	}{
		{"y confirms", "y", true, true, false, true},
		{"Y confirms", "Y", true, true, false, true},
		{"n declines", "n", false, true, false, true},
		{"N declines", "N", false, true, false, true},
		{"enter defaults no", "enter", false, true, false, true},
		{"ctrl+c cancels", "ctrl+c", false, true, true, true},
		{"esc cancels", "esc", false, true, true, true},
		{"q cancels", "q", false, true, true, true},
		{"unhandled is no-op", "x", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{prompt: "Continue?"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(confirmModel)

			if um.confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", um.confirmed, tt.confirmed)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.wantCmd)
			}
		})
	}
}

func TestConfirmModel_ViewNotDone(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "Delete files?"}
	view := m.View()
	if view.Content == "" {
		t.Error("View().Content should not be empty when not done")
	}
}

func TestConfirmModel_ViewDone(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "Delete files?", done: true}
	// View() should not panic; when done, the content wraps an empty string
	_ = m.View()
}

func TestConfirmModel_Init(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "test"}
	cmd := m.Init()
	if cmd != nil {
		t.Error("Init() should return nil cmd")
	}
}

func TestLine_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes mixed case", "YeS\n", true},
		{"padded", "  y  \n", true},
		{"n", "n\n", false},
		{"empty line defaults no", "\n", false},
		{"eof defaults no", "", false},
		{"no trailing newline", "y", true},
		{"anything else", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			l := NewLine(strings.NewReader(tt.input), &out)

			got, err := l.Confirm(context.Background(), "Remove feat?")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Remove feat? [y/N] ") {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestLine_ConsecutivePrompts(t *testing.T) {
	t.Parallel()

	l := NewLine(strings.NewReader("y\nn\ny\n"), io.Discard)
	var got []bool
	for range 4 {
		ok, err := l.Confirm(context.Background(), "?")
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, ok)
	}
	want := []bool{true, false, true, false}
	if !slices.Equal(got, want) {
		t.Errorf("answers = %v, want %v", got, want)
	}
}

func TestLine_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLine(strings.NewReader("y\n"), io.Discard).Confirm(ctx, "?"); err == nil {
		t.Error("Confirm() with cancelled context = nil error")
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	s := &Static{Answers: []bool{true}}
	first, _ := s.Confirm(context.Background(), "one")
	second, _ := s.Confirm(context.Background(), "two")
	if !first || second {
		t.Errorf("answers = %v, %v, want true, false", first, second)
	}
	if !slices.Equal(s.Questions, []string{"one", "two"}) {
		t.Errorf("Questions = %v", s.Questions)
	}
}
