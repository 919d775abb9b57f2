package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/scene"
)

func newPlay(t *testing.T, start geom.Pt, keys ...string) (PlayModel, *scene.Scene) {
	t.Helper()
	s, v, err := loadView(pagePath, defaultView)
	if err != nil {
		t.Fatalf("loadView: %v", err)
	}
	if err := v.Focus(keys...); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	mgr := dnd.NewMoveManager(v, v.Focused(), start, dnd.Options{})
	return NewPlayModel(v, mgr, dnd.DefaultConfig(), start), s
}

func press(m PlayModel, keys ...tea.KeyMsg) (PlayModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(PlayModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestPlayModelSteps(t *testing.T) {
	m, _ := newPlay(t, geom.Pt{X: 360, Y: 270}, "a")

	m, cmd := press(m, keyUp, keyUp)
	if cmd != nil {
		t.Fatal("arrow keys should not quit")
	}
	if m.Pointer != (geom.Pt{X: 360, Y: 250}) || m.Moves != 2 {
		t.Fatalf("Pointer = %s after %d moves, want (360,250) after 2", m.Pointer, m.Moves)
	}
	if got := dnd.Describe(m.Spec); got != "before b" {
		t.Errorf("Spec = %q, want before b", got)
	}

	view := m.View()
	for _, want := range []string{"pointer", "(360,250)", "before b"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestPlayModelFreeToggle(t *testing.T) {
	m, _ := newPlay(t, geom.Pt{X: 360, Y: 398}, "a")

	m, _ = press(m, runes("f"))
	if !m.Free {
		t.Fatal("f should enable free positioning")
	}
	if m.Spec == nil || m.Spec.Kind() != "free" {
		t.Errorf("Spec = %s, want a free insertion", dnd.Describe(m.Spec))
	}
}

func TestPlayModelStepSize(t *testing.T) {
	m, _ := newPlay(t, geom.Pt{X: 100, Y: 100}, "a")

	m, _ = press(m, runes("+"))
	if m.Step != 20 {
		t.Errorf("Step = %g, want 20", m.Step)
	}
	m, _ = press(m, runes("-"), runes("-"))
	if m.Step != 5 {
		t.Errorf("Step = %g, want 5", m.Step)
	}
	if m.Moves != 0 {
		t.Errorf("step changes counted as moves: %d", m.Moves)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	if m.Pointer != (geom.Pt{X: 150, Y: 100}) {
		t.Errorf("shift+right moved to %s, want (150,100)", m.Pointer)
	}
}

func TestPlayModelDrop(t *testing.T) {
	m, s := newPlay(t, geom.Pt{X: 365, Y: 270}, "a")

	for range 17 {
		m, _ = press(m, keyDown)
	}
	m, cmd := press(m, keyEnter)
	if !isQuit(cmd) {
		t.Fatal("enter should quit")
	}
	if !m.Dropped || m.Err != nil {
		t.Fatalf("Dropped = %v, Err = %v", m.Dropped, m.Err)
	}
	stack, _ := s.Doc.Template("stack")
	if last := stack.Children[len(stack.Children)-1]; last != "a" {
		t.Errorf("stack children = %v, want a last", stack.Children)
	}
}

func TestPlayModelQuit(t *testing.T) {
	quits := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range quits {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newPlay(t, geom.Pt{X: 365, Y: 270}, "a")
			before := s.Doc.String()

			m, _ = press(m, keyDown)
			if !m.view.Unlogged() {
				t.Fatal("gesture should run unlogged")
			}
			m, cmd := press(m, tt.key)
			if !isQuit(cmd) {
				t.Fatalf("%s should quit", tt.name)
			}
			if m.Dropped {
				t.Error("quitting should not drop")
			}
			if s.Doc.String() != before {
				t.Error("document changed without a drop")
			}
			if m.view.Unlogged() {
				t.Error("unlogged scope left open after quit")
			}
			if m.view.Tentative() != nil {
				t.Error("marker left on screen after quit")
			}
			if m.mgr.State() != dnd.StateAborted {
				t.Errorf("State = %s, want aborted", m.mgr.State())
			}
		})
	}
}

func TestNudge(t *testing.T) {
	p := geom.Pt{X: 10, Y: 10}
	tests := []struct {
		key  string
		want geom.Pt
	}{
		{"up", geom.Pt{X: 10, Y: 5}},
		{"j", geom.Pt{X: 10, Y: 15}},
		{"shift+left", geom.Pt{X: 5, Y: 10}},
		{"l", geom.Pt{X: 15, Y: 10}},
		{"x", p},
	}
	for _, tt := range tests {
		if got := nudge(p, tt.key, 5); got != tt.want {
			t.Errorf("nudge(%q) = %s, want %s", tt.key, got, tt.want)
		}
	}
}
