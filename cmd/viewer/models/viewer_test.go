package models

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/noise/cmd/viewer/components"
	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/palette"
)

type fakeTrigger struct {
	pending bool
	calls   int
}

func (f *fakeTrigger) Trigger() bool {
	f.calls++
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

func gridField(id string, at time.Time) *field.Field {
	return &field.Field{
		ID:          id,
		Params:      field.Params{Step: 0.25, Extent: 1},
		Samples:     4,
		Values:      make([]float64, 16),
		GeneratedAt: at,
	}
}

func TestNewViewer(t *testing.T) {
	m, err := NewViewer(nil, &fakeTrigger{}, "banded")
	require.NoError(t, err)
	assert.Equal(t, "banded", m.PaletteName())

	_, err = NewViewer(nil, &fakeTrigger{}, "plasma")
	assert.ErrorIs(t, err, palette.ErrUnknownPalette)
}

func TestViewer_ReceivesFromChannel(t *testing.T) {
	fields := make(chan *field.Field, 1)
	m, err := NewViewer(fields, &fakeTrigger{}, "grayscale")
	require.NoError(t, err)

	f := gridField("first", time.Now())
	fields <- f

	msg := m.Init()()
	require.IsType(t, fieldMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.Same(t, f, m.Current())
	assert.NotNil(t, cmd, "viewer keeps listening after a field")

	close(fields)
	_, cmd = m.Update(cmd())
	assert.Nil(t, cmd)
	assert.True(t, m.closed)
}

func TestViewer_IgnoresStaleField(t *testing.T) {
	m, err := NewViewer(nil, &fakeTrigger{}, "grayscale")
	require.NoError(t, err)

	now := time.Now()
	newer := gridField("newer", now)
	older := gridField("older", now.Add(-time.Second))

	m.Update(fieldMsg{field: newer})
	m.Update(fieldMsg{field: older})

	assert.Same(t, newer, m.Current())
	assert.Equal(t, 2, m.received)
}

func TestViewer_Keys(t *testing.T) {
	trigger := &fakeTrigger{}
	m, err := NewViewer(nil, trigger, "grayscale")
	require.NoError(t, err)

	t.Run("palette cycles", func(t *testing.T) {
		assert.Nil(t, m.handleKey("p"))
		assert.Equal(t, "banded", m.PaletteName())
		assert.IsType(t, palette.Banded{}, m.mapper)

		m.handleKey("p")
		assert.Equal(t, "grayscale", m.PaletteName())
	})

	t.Run("regenerate", func(t *testing.T) {
		m.handleKey("r")
		assert.Equal(t, "regeneration queued", m.status)

		m.handleKey("r")
		assert.Equal(t, "regeneration already queued", m.status)
		assert.Equal(t, 2, trigger.calls)
	})

	t.Run("regenerate after close", func(t *testing.T) {
		m.Update(fieldsClosedMsg{})
		m.handleKey("r")
		assert.Equal(t, 2, trigger.calls, "closed generator is not asked")
	})

	t.Run("quit", func(t *testing.T) {
		cmd := m.handleKey("q")
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestViewer_GridSize(t *testing.T) {
	m, err := NewViewer(nil, &fakeTrigger{}, "grayscale")
	require.NoError(t, err)

	assert.Equal(t, 0, m.gridSize(), "no field yet")

	m.Update(fieldMsg{field: gridField("f", time.Now())})

	tests := []struct {
		name          string
		width, height int
		expected      int
	}{
		{"roomy terminal shows every sample", 200, 60, 4},
		{"short terminal", 200, chromeHeight + 2, 2},
		{"narrow terminal", chromeWidth + 3*components.CellWidth, 60, 3},
		{"too small", 10, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			assert.Equal(t, tt.expected, m.gridSize())
		})
	}
}

func TestViewer_View(t *testing.T) {
	m, err := NewViewer(nil, &fakeTrigger{}, "grayscale")
	require.NoError(t, err)

	assert.Equal(t, "Initializing...", m.View())

	m.SetSize(120, 40)
	assert.Contains(t, m.View(), "Waiting for first field")

	m.Update(fieldMsg{field: gridField("0123456789abcdef", time.Now())})
	view := m.View()
	assert.Contains(t, view, "01234567")
	assert.Contains(t, view, "Showing 4/4")
}
