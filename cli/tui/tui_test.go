package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justapithecus/photodrop/types"
)

func testInfo() Info {
	return Info{
		File:     types.NewBytesFile("IMG_0042.jpg", "image/jpeg", make([]byte, 3*1024*1024)),
		Endpoint: "https://script.example.com/exec",
		Comment:  "from the party",
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name    string
		outcome *types.Outcome
		want    State
	}{
		{"nil", nil, StateSending},
		{"readable", types.Success("R1", false), StateDelivered},
		{"blind", types.Success("", true), StateUnconfirmed},
		{"failure", types.Failure(errors.New("x")), StateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.outcome); got != tt.want {
				t.Errorf("StateOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubmitModel_Sending(t *testing.T) {
	m := NewSubmitModel(testInfo(), nil)
	view := m.View()

	for _, want := range []string{"IMG_0042.jpg", "image/jpeg", "3.0 MiB", "script.example.com", "from the party", "Sending...", "Ctrl+C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSubmitModel_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome *types.Outcome
		want    string
	}{
		{"receipt", types.Success("R123", false), "Sent! Receipt R123"},
		{"no receipt", types.Success("", false), "Sent!"},
		{"blind", types.Success("", true), "confirmation pending"},
		{"failure", types.Failure(errors.New("network unreachable")), "Failed: network unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := NewSubmitModel(testInfo(), nil).Update(outcomeMsg{outcome: tt.outcome})
			if cmd == nil {
				t.Fatal("expected quit command after outcome")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}

			m := model.(SubmitModel)
			if m.Outcome() != tt.outcome {
				t.Error("model should hold the outcome")
			}
			view := m.View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
			if strings.Contains(view, "Ctrl+C") {
				t.Error("cancel hint should disappear once resolved")
			}
		})
	}
}

func TestSubmitModel_QuitCancels(t *testing.T) {
	canceled := false
	m := NewSubmitModel(testInfo(), func() { canceled = true })

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if !canceled {
		t.Error("quit should cancel the submission")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(model.(SubmitModel).View(), "Canceled.") {
		t.Error("view should report cancellation")
	}
}

func TestSubmitModel_IgnoresQuitAfterOutcome(t *testing.T) {
	canceled := false
	model, _ := NewSubmitModel(testInfo(), func() { canceled = true }).
		Update(outcomeMsg{outcome: types.Success("R1", false)})

	model.(SubmitModel).Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if canceled {
		t.Error("quit after outcome must not cancel")
	}
}
