package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pingboard/internal/stats"
	"github.com/rileyhilliard/pingboard/internal/ui"
)

// Column widths for the host table. The sparkline absorbs whatever width
// remains.
const (
	colMarker  = 2
	colHost    = 24
	colLoss    = 6
	colLast    = 9
	colAvg     = 9
	colMin     = 9
	colMax     = 9
	minSpark   = 10
	tableChrom = colMarker + colHost + colLoss + colLast + colAvg + colMin + colMax + 7 // separators
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}
	if m.viewMode == ViewDetail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.tableHeader())
	b.WriteString("\n")

	for i, r := range m.rows {
		b.WriteString(m.rowView(r, i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	probing := 0
	for _, r := range m.rows {
		if r.snap.Status == "" && !m.coord.Paused(r.index) {
			probing++
		}
	}
	title := titleStyle.Render("pingboard")
	meta := mutedStyle.Render(fmt.Sprintf("  %s  every %s  %d/%d probing",
		m.protocol, m.interval, probing, len(m.rows)))
	return title + meta
}

func (m Model) tableHeader() string {
	sortMark := m.glyphs.SortAsc
	if m.sortDesc {
		sortMark = m.glyphs.SortDesc
	}
	cols := fmt.Sprintf("%-*s %-*s %*s %*s %*s %*s %*s %s %s",
		colMarker, "",
		colHost, "HOST",
		colLoss, "LOSS",
		colLast, "LAST",
		colAvg, "AVG",
		colMin, "MIN",
		colMax, "MAX",
		"HISTORY",
		sortMark+m.sortKey.String())
	return headerStyle.Render(cols)
}

func (m Model) rowView(r row, selected bool) string {
	s := r.snap

	marker := strings.Repeat(" ", colMarker)
	if selected {
		marker = selectedStyle.Render(m.glyphs.Selected) + " "
	}

	host := s.Target
	if m.coord.Paused(r.index) {
		host = m.glyphs.Paused + " " + host
	} else if m.coord.Burst(r.index) {
		host = m.glyphs.Burst + " " + host
	}
	host = truncate(host, colHost)

	hostCell := hostStyle.Render(fmt.Sprintf("%-*s", colHost, host))
	if selected {
		hostCell = selectedStyle.Render(fmt.Sprintf("%-*s", colHost, host))
	}

	if s.Status != "" {
		// Unprobeable host: no columns, just the reason.
		reason := truncate(s.Status, m.width-colMarker-colHost-4)
		return marker + hostCell + " " + lossStyle.Render(m.glyphs.Fail+" "+reason)
	}

	lossCell := okStyle.Render(fmt.Sprintf("%*s", colLoss, ui.FormatLoss(s.Loss)))
	if s.Loss > 0 {
		lossCell = lossStyle.Render(fmt.Sprintf("%*s", colLoss, ui.FormatLoss(s.Loss)))
	}

	sparkWidth := m.width - tableChrom
	if sparkWidth < minSpark {
		sparkWidth = minSpark
	}

	return marker + hostCell + " " + lossCell + " " +
		fmt.Sprintf("%*s", colLast, m.lastCell(s)) + " " +
		fmt.Sprintf("%*s", colAvg, ui.FormatLatency(s.RecentAvg)) + " " +
		fmt.Sprintf("%*s", colMin, ui.FormatLatency(s.Min)) + " " +
		fmt.Sprintf("%*s", colMax, ui.FormatLatency(s.Max)) + " " +
		ui.RenderSparkline(s.History, sparkWidth, m.glyphs)
}

// lastCell renders the most recent probe outcome: its latency, or a loss
// marker.
func (m Model) lastCell(s stats.HostSnapshot) string {
	if s.Sent == 0 {
		return mutedStyle.Render("-")
	}
	switch {
	case s.Last.Refused:
		return warnStyle.Render(ui.FormatLatency(s.Last.Latency))
	case s.Last.Latency > 0:
		return ui.FormatLatency(s.Last.Latency)
	default:
		return lossStyle.Render("lost")
	}
}

func (m Model) footerView() string {
	keys := "↑/↓ select · space pause · b burst · enter detail · s sort · r reverse · ? help · q quit"
	if m.glyphs.Selected == ui.ASCIIGlyphs.Selected {
		keys = "j/k select | space pause | b burst | enter detail | s sort | r reverse | ? help | q quit"
	}
	return footerStyle.Render(keys)
}

// truncate shortens s to max columns, ellipsis-free to keep the ASCII mode
// pure.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// lipgloss width helper used by the detail view.
func padLine(label, value string) string {
	return lipgloss.NewStyle().Width(12).Render(label) + value
}
