// Package dashboard is the Bubble Tea front end: it samples the stats board
// on a fixed cadence and renders every host's probe state as a live table.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pingboard/internal/scheduler"
	"github.com/rileyhilliard/pingboard/internal/stats"
	"github.com/rileyhilliard/pingboard/internal/ui"
)

// ViewMode selects between the host table and the single-host detail view.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// refreshInterval is the render cadence. Rendering is time-driven, not
// probe-driven: a screen update happens every tick no matter how many probe
// results arrived in between.
const refreshInterval = time.Second

// row pairs a host's board position with its latest snapshot. The board index
// stays stable across re-sorting, so control actions always reach the right
// host.
type row struct {
	index int
	snap  stats.HostSnapshot
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	coord  *scheduler.Coordinator
	glyphs ui.GlyphSet

	protocol string // header text, e.g. "icmp" or "tcp:443"
	interval time.Duration

	rows     []row
	selected int
	sortKey  SortKey
	sortDesc bool

	width  int
	height int

	viewMode ViewMode
	showHelp bool
	quitting bool

	detailViewport viewport.Model
	viewportReady  bool

	lastUpdate time.Time
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// NewModel creates the dashboard model over a running coordinator.
func NewModel(coord *scheduler.Coordinator, protocol string, interval time.Duration, glyphs ui.GlyphSet) Model {
	m := Model{
		coord:    coord,
		glyphs:   glyphs,
		protocol: protocol,
		interval: interval,
		sortKey:  SortInput,
	}
	m.refresh()
	if len(m.rows) > 0 {
		m.selected = 0
	}
	return m
}

// Init starts the render tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tickMsg:
		m.refresh()
		if m.viewMode == ViewDetail {
			m.updateDetailContent()
		}
		return m, m.tickCmd()
	}
	return m, nil
}

// refresh pulls fresh snapshots from the board and re-sorts, keeping the
// cursor on the same host even when sorting moves it.
func (m *Model) refresh() {
	// The board index identifies a host uniquely even when the same target
	// appears twice, so the cursor is restored by index, not by name.
	selectedIndex := -1
	if m.selected >= 0 && m.selected < len(m.rows) {
		selectedIndex = m.rows[m.selected].index
	}

	snaps := m.coord.Board().Snapshot()
	m.rows = make([]row, len(snaps))
	for i, s := range snaps {
		m.rows[i] = row{index: i, snap: s}
	}
	m.sortRows()

	if selectedIndex >= 0 {
		for i, r := range m.rows {
			if r.index == selectedIndex {
				m.selected = i
				break
			}
		}
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 && len(m.rows) > 0 {
		m.selected = 0
	}
	m.lastUpdate = time.Now()
}

func (m *Model) resizeViewport() {
	headerHeight := 3
	footerHeight := 2
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	if !m.viewportReady {
		m.detailViewport = viewport.New(m.width, h)
		m.detailViewport.YPosition = headerHeight
		m.viewportReady = true
	} else {
		m.detailViewport.Width = m.width
		m.detailViewport.Height = h
	}
	if m.viewMode == ViewDetail {
		m.updateDetailContent()
	}
}

// selectedRow returns the row under the cursor, or nil when the board is
// empty.
func (m *Model) selectedRow() *row {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	return &m.rows[m.selected]
}
