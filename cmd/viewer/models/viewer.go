package models

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/noise/cmd/viewer/components"
	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/palette"
)

// Rows taken by the title, borders, status bar and help line.
const chromeHeight = 6

// Columns taken by the grid border and the info panel.
const chromeWidth = 2 + 32

// Trigger requests an extra generation pass.
type Trigger interface {
	Trigger() bool
}

type fieldMsg struct {
	field *field.Field
}

type fieldsClosedMsg struct{}

// ViewerModel shows the most recent field as a grid of shaded cells.
type ViewerModel struct {
	fields  <-chan *field.Field
	trigger Trigger

	current     *field.Field
	received    int
	lastUpdated time.Time

	paletteIdx int
	mapper     palette.Mapper

	status string
	closed bool

	width  int
	height int
}

// NewViewer creates a viewer that reads fields from the channel and asks
// trigger for new ones on demand.
func NewViewer(fields <-chan *field.Field, trigger Trigger, paletteName string) (*ViewerModel, error) {
	mapper, err := palette.ByName(paletteName)
	if err != nil {
		return nil, err
	}

	m := &ViewerModel{
		fields:  fields,
		trigger: trigger,
		mapper:  mapper,
	}
	for i, name := range palette.Names {
		if strings.EqualFold(name, paletteName) {
			m.paletteIdx = i
		}
	}
	return m, nil
}

// Init starts listening for fields.
func (m *ViewerModel) Init() tea.Cmd {
	log.Debug("Initializing viewer", "palette", m.PaletteName())
	return m.waitForField()
}

// Update handles messages and updates the viewer state
func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case fieldMsg:
		m.receive(msg.field)
		return m, m.waitForField()

	case fieldsClosedMsg:
		m.closed = true
		m.status = "generator stopped"
		return m, nil
	}

	return m, nil
}

func (m *ViewerModel) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit

	case "p":
		m.cyclePalette()

	case "r":
		if m.closed {
			m.status = "generator stopped"
		} else if m.trigger.Trigger() {
			m.status = "regeneration queued"
		} else {
			m.status = "regeneration already queued"
		}
	}
	return nil
}

func (m *ViewerModel) cyclePalette() {
	m.paletteIdx = (m.paletteIdx + 1) % len(palette.Names)
	mapper, err := palette.ByName(palette.Names[m.paletteIdx])
	if err != nil {
		m.status = err.Error()
		return
	}
	m.mapper = mapper
	m.status = "palette: " + m.PaletteName()
}

// receive keeps the newest field seen so far.
func (m *ViewerModel) receive(f *field.Field) {
	m.received++
	if m.current != nil && f.GeneratedAt.Before(m.current.GeneratedAt) {
		log.Debug("Ignoring stale field", "field_id", f.ID)
		return
	}
	m.current = f
	m.lastUpdated = time.Now()
	m.status = ""
}

// PaletteName returns the name of the palette in use.
func (m *ViewerModel) PaletteName() string {
	return palette.Names[m.paletteIdx]
}

// Current returns the field on screen, or nil.
func (m *ViewerModel) Current() *field.Field {
	return m.current
}

// SetSize updates the viewer size
func (m *ViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the viewer
func (m *ViewerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("VoidMesh Noise Viewer") + "\n")
	s.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(),
		m.renderInfoPanel(),
	) + "\n")
	s.WriteString(m.renderStatusBar() + "\n")
	s.WriteString(components.HelpStyle.Render("q quit • p palette • r regenerate"))

	return s.String()
}

// gridSize is the number of cells per side that fits the terminal.
func (m *ViewerModel) gridSize() int {
	if m.current == nil {
		return 0
	}
	cols := (m.width - chromeWidth) / components.CellWidth
	rows := m.height - chromeHeight
	return max(0, min(cols, rows, m.current.Samples))
}

// renderGrid downsamples the field onto the visible cells by nearest sample.
func (m *ViewerModel) renderGrid() string {
	if m.current == nil {
		msg := "Waiting for first field..."
		if m.closed {
			msg = "No field was generated"
		}
		return components.BorderStyle.Render(msg)
	}

	size := m.gridSize()
	if size == 0 {
		return components.BorderStyle.Render(components.ErrorStyle.Render("Terminal too small"))
	}

	n := m.current.Samples
	rows := make([]string, size)
	for y := 0; y < size; y++ {
		var row strings.Builder
		sy := y * n / size
		for x := 0; x < size; x++ {
			sx := x * n / size
			row.WriteString(components.Cell(m.mapper.Colour(m.current.At(sx, sy))))
		}
		rows[y] = row.String()
	}

	return components.BorderStyle.Render(strings.Join(rows, "\n"))
}

func (m *ViewerModel) renderInfoPanel() string {
	var info strings.Builder

	line := func(label string, value interface{}) {
		info.WriteString(components.InfoLabelStyle.Render(label+": ") +
			components.InfoValueStyle.Render(fmt.Sprint(value)) + "\n")
	}

	line("Palette", m.PaletteName())
	line("Received", m.received)

	if f := m.current; f != nil {
		line("Field", shortID(f.ID))
		line("Samples", fmt.Sprintf("%d×%d", f.Samples, f.Samples))
		line("Step", f.Params.Step)
		line("Extent", f.Params.Extent)
		line("Min", fmt.Sprintf("%.4f", f.Min))
		line("Max", fmt.Sprintf("%.4f", f.Max))
		line("Mean", fmt.Sprintf("%.4f", f.Mean))
		line("Gradients", f.Gradients)
		line("Took", f.Duration.Round(time.Microsecond))
	}

	return components.InfoPanelStyle.Render(strings.TrimRight(info.String(), "\n"))
}

func (m *ViewerModel) renderStatusBar() string {
	var status []string

	if m.current != nil {
		status = append(status, fmt.Sprintf("Showing %d/%d", m.gridSize(), m.current.Samples))
	}
	if !m.lastUpdated.IsZero() {
		status = append(status, fmt.Sprintf("Updated: %s", m.lastUpdated.Format("15:04:05")))
	}
	if m.status != "" {
		status = append(status, m.status)
	}

	statusText := strings.Join(status, " • ")
	return components.StatusBarStyle.Width(m.width).Render(statusText)
}

// waitForField blocks in a command until the next field arrives.
func (m *ViewerModel) waitForField() tea.Cmd {
	fields := m.fields
	return func() tea.Msg {
		f, ok := <-fields
		if !ok {
			return fieldsClosedMsg{}
		}
		return fieldMsg{field: f}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
