package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/droptarget/pkg/buildinfo"
	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/scene"
)

// Minimap size in cells.
const (
	mapCols = 48
	mapRows = 16
)

var (
	mapBorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	mapPointerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	mapNodeStyle    = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle       = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayModel - Interactive move gesture
// =============================================================================

// PlayModel is the bubbletea model for stepping a move gesture with the
// arrow keys. Every key press is one pointer move; enter drops.
type PlayModel struct {
	view *scene.View
	mgr  *dnd.MoveManager
	cfg  dnd.Config

	Pointer geom.Pt
	Step    float64
	Free    bool
	Spec    dnd.InsertionSpec
	Moves   int
	Dropped bool
	Err     error
}

// NewPlayModel creates a model for a gesture that started at p.
func NewPlayModel(v *scene.View, mgr *dnd.MoveManager, cfg dnd.Config, p geom.Pt) PlayModel {
	return PlayModel{view: v, mgr: mgr, cfg: cfg, Pointer: p, Step: 10}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	step := m.Step
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.mgr.Cancel()
		return m, tea.Quit
	case "enter":
		m.Err = m.mgr.EndDrag()
		m.Dropped = m.Err == nil && !m.mgr.Aborted()
		return m, tea.Quit
	case "f":
		m.Free = !m.Free
	case "+", "=":
		m.Step *= 2
		return m, nil
	case "-":
		if m.Step > 1 {
			m.Step /= 2
		}
		return m, nil
	case "shift+up", "shift+down", "shift+left", "shift+right":
		step *= 10
		fallthrough
	case "up", "down", "left", "right", "k", "j", "h", "l":
		m.Pointer = nudge(m.Pointer, key.String(), step)
	default:
		return m, nil
	}

	m.Moves++
	if err := m.mgr.Drag(m.Pointer, dnd.Modifiers{Meta: m.Free}); err != nil {
		m.Err = err
		return m, tea.Quit
	}
	m.Spec = m.mgr.Tentative()
	return m, nil
}

// nudge moves p by step in the direction named by key.
func nudge(p geom.Pt, key string, step float64) geom.Pt {
	switch strings.TrimPrefix(key, "shift+") {
	case "up", "k":
		return p.MoveBy(0, -step)
	case "down", "j":
		return p.MoveBy(0, step)
	case "left", "h":
		return p.MoveBy(-step, 0)
	case "right", "l":
		return p.MoveBy(step, 0)
	}
	return p
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName + " play"))
	b.WriteString(" " + StyleDim.Render(buildinfo.Short()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move  shift ×10  +/- step  f free  ⏎ drop  q quit"))
	b.WriteString("\n\n")
	b.WriteString(mapBorderStyle.Render(m.minimap()))
	b.WriteString("\n")

	mods := "none"
	if m.Free {
		mods = "free"
	}
	marker := "none"
	if box, ok := dnd.MarkerBox(m.Spec, m.cfg); ok {
		marker = box.String()
	}
	rows := [][]string{
		{"pointer", m.Pointer.String()},
		{"step", fmt.Sprintf("%gpx", m.Step)},
		{"modifiers", mods},
		{"target", dnd.Describe(m.Spec)},
		{"marker", marker},
		{"moves", fmt.Sprint(m.Moves)},
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			if row == 3 {
				return specStyle(m.Spec)
			}
			return StyleValue
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// minimap draws the view frame as a character grid: node boxes as dots, the
// insertion marker as shaded cells and the pointer as a cross.
func (m PlayModel) minimap() string {
	frame := m.view.Frame()
	marker, hasMarker := dnd.MarkerBox(m.Spec, m.cfg)
	cw, ch := frame.Width/mapCols, frame.Height/mapRows
	elements := m.view.Elements()

	var b strings.Builder
	for r := range mapRows {
		for c := range mapCols {
			cell := geom.NewBox(frame.Top+float64(r)*ch, frame.Left+float64(c)*cw, cw, ch)
			switch {
			case cell.Contains(m.Pointer):
				b.WriteString(mapPointerStyle.Render("+"))
			case hasMarker && overlaps(cell, marker):
				b.WriteString(specStyle(m.Spec).Render("▒"))
			case onEdge(cell, elements):
				b.WriteString(mapNodeStyle.Render("·"))
			default:
				b.WriteByte(' ')
			}
		}
		if r < mapRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// overlaps treats zero-thickness marker lines as covering the cells they
// cross.
func overlaps(cell, marker geom.Box) bool {
	return marker.Left <= cell.Right() && marker.Right() >= cell.Left &&
		marker.Top <= cell.Bottom() && marker.Bottom() >= cell.Top
}

// onEdge reports whether a cell straddles the border of an element box.
func onEdge(cell geom.Box, elements []*dnd.Element) bool {
	for _, el := range elements {
		if !overlaps(cell, el.Box) {
			continue
		}
		if el.Box.Left >= cell.Left && el.Box.Left < cell.Right() ||
			el.Box.Top >= cell.Top && el.Box.Top < cell.Bottom() {
			return true
		}
	}
	return false
}
