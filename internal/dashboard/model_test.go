package dashboard

import (
	"context"
	"net/netip"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingboard/internal/logger"
	"github.com/rileyhilliard/pingboard/internal/probe"
	"github.com/rileyhilliard/pingboard/internal/scheduler"
	"github.com/rileyhilliard/pingboard/internal/stats"
	"github.com/rileyhilliard/pingboard/internal/ui"
)

type stubProber struct {
	outcome probe.Outcome
}

func (s stubProber) Probe(ctx context.Context, timeout time.Duration) probe.Outcome {
	return s.outcome
}

func (stubProber) Close() error { return nil }

func newTestModel(t *testing.T, specs ...string) Model {
	t.Helper()
	targets := make([]probe.Target, len(specs))
	for i, s := range specs {
		addr, err := netip.ParseAddr("192.0.2.1")
		require.NoError(t, err)
		targets[i] = probe.Target{Spec: s, Addr: addr}
	}

	coord, err := scheduler.New(targets, scheduler.Options{
		Interval: time.Second,
		Timeout:  time.Second,
		History:  stats.MinHistory,
		Logger:   logger.Noop(),
		Factory: func(probe.Target) (probe.Prober, error) {
			return stubProber{outcome: probe.Success(10 * time.Millisecond)}, nil
		},
	})
	require.NoError(t, err)

	m := NewModel(coord, "icmp", time.Second, ui.ASCIIGlyphs)
	m.width = 120
	m.height = 40
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestInitialSelection(t *testing.T) {
	m := newTestModel(t, "a.test", "b.test")
	assert.Equal(t, 0, m.selected)
	assert.Len(t, m.rows, 2)
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, "a.test", "b.test", "c.test")

	m = update(t, m, keyMsg("j"))
	assert.Equal(t, 1, m.selected)
	m = update(t, m, keyMsg("j"))
	m = update(t, m, keyMsg("j"))
	assert.Equal(t, 2, m.selected, "selection must stop at the last host")

	m = update(t, m, keyMsg("k"))
	assert.Equal(t, 1, m.selected)
	m = update(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.selected)
	m = update(t, m, keyMsg("G"))
	assert.Equal(t, 2, m.selected)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, "a.test")
	next, cmd := m.Update(keyMsg("q"))
	assert.True(t, next.(Model).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSortCycleAndReverse(t *testing.T) {
	m := newTestModel(t, "bb.test", "aa.test")
	assert.Equal(t, SortInput, m.sortKey)

	m = update(t, m, keyMsg("s"))
	assert.Equal(t, SortName, m.sortKey)
	assert.Equal(t, "aa.test", m.rows[0].snap.Target)

	m = update(t, m, keyMsg("r"))
	assert.True(t, m.sortDesc)
	assert.Equal(t, "bb.test", m.rows[0].snap.Target)

	// Cycle wraps back to input order eventually.
	for i := 0; i < int(sortKeyCount)-1; i++ {
		m = update(t, m, keyMsg("s"))
	}
	assert.Equal(t, SortInput, m.sortKey)
}

func TestSortPreservesSelection(t *testing.T) {
	m := newTestModel(t, "bb.test", "aa.test")

	// Select bb.test (row 0 in input order), then sort by name.
	assert.Equal(t, "bb.test", m.rows[m.selected].snap.Target)
	m = update(t, m, keyMsg("s"))
	assert.Equal(t, "bb.test", m.rows[m.selected].snap.Target,
		"cursor must follow the host, not the row position")
}

func TestSortKeepsSelectionWithDuplicateTargets(t *testing.T) {
	// The same target can be listed twice; the cursor must stay on the exact
	// board entry, not jump to the first row with a matching name.
	m := newTestModel(t, "dup.test", "dup.test")

	m = update(t, m, keyMsg("j"))
	require.Equal(t, 1, m.rows[m.selected].index)

	m = update(t, m, keyMsg("s"))
	assert.Equal(t, 1, m.rows[m.selected].index)
}

func TestLatencySortSinksSilentHosts(t *testing.T) {
	m := newTestModel(t, "quiet.test", "fast.test")

	m.coord.Board().Host(1).Apply(probe.Success(5 * time.Millisecond))
	m.refresh()
	m.sortKey = SortLatency
	m.sortRows()

	assert.Equal(t, "fast.test", m.rows[0].snap.Target)
	assert.Equal(t, "quiet.test", m.rows[1].snap.Target)
}

func TestPauseKeyTogglesSelectedHost(t *testing.T) {
	m := newTestModel(t, "a.test", "b.test")
	m = update(t, m, keyMsg("j"))

	m = update(t, m, keyMsg(" "))
	assert.False(t, m.coord.Paused(0))
	assert.True(t, m.coord.Paused(1))

	m = update(t, m, keyMsg(" "))
	assert.False(t, m.coord.Paused(1))
}

func TestBurstKeys(t *testing.T) {
	m := newTestModel(t, "a.test", "b.test")

	m = update(t, m, keyMsg("b"))
	assert.True(t, m.coord.Burst(0))
	assert.False(t, m.coord.Burst(1))

	m = update(t, m, keyMsg("B"))
	assert.True(t, m.coord.Burst(0))
	assert.True(t, m.coord.Burst(1))

	m = update(t, m, keyMsg("B"))
	assert.False(t, m.coord.Burst(0))
	assert.False(t, m.coord.Burst(1))
}

func TestTickRefreshesRows(t *testing.T) {
	m := newTestModel(t, "a.test")
	assert.Zero(t, m.rows[0].snap.Sent)

	m.coord.Board().Host(0).Apply(probe.Success(10 * time.Millisecond))
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Equal(t, uint64(1), m.rows[0].snap.Sent)
	assert.NotNil(t, cmd, "tick must reschedule itself")
}

func TestDetailViewToggle(t *testing.T) {
	m := newTestModel(t, "a.test")
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = update(t, m, keyMsg("d"))
	assert.Equal(t, ViewDetail, m.viewMode)
	assert.Contains(t, m.View(), "a.test")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, "a.test")
	m = update(t, m, keyMsg("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "burst")

	m = update(t, m, keyMsg("j"))
	assert.False(t, m.showHelp)
	assert.Equal(t, 0, m.selected, "keys while help is open must not move the cursor")
}

func TestViewListsEveryHost(t *testing.T) {
	m := newTestModel(t, "alpha.test", "beta.test")
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "alpha.test")
	assert.Contains(t, view, "beta.test")
	assert.Contains(t, view, "HOST")
}
