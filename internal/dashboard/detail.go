package dashboard

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/pingboard/internal/ui"
)

// detailView renders the scrollable single-host view.
func (m Model) detailView() string {
	r := m.selectedRow()
	if r == nil {
		return m.headerView() + "\n" + mutedStyle.Render("no host selected")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.snap.Target))
	b.WriteString(addrStyle.Render("  " + r.snap.Addr))
	b.WriteString("\n\n")
	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.detailContent())
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc back · q quit"))
	return b.String()
}

// updateDetailContent refreshes the viewport body from the selected host.
func (m *Model) updateDetailContent() {
	if m.viewportReady {
		m.detailViewport.SetContent(m.detailContent())
	}
}

func (m *Model) detailContent() string {
	r := m.selectedRow()
	if r == nil {
		return ""
	}
	s := r.snap

	var b strings.Builder
	if s.Status != "" {
		b.WriteString(lossStyle.Render(m.glyphs.Fail + " " + s.Status))
		b.WriteString("\n\n")
	}

	b.WriteString(padLine("sent", fmt.Sprintf("%d", s.Sent)) + "\n")
	b.WriteString(padLine("received", fmt.Sprintf("%d", s.Received)) + "\n")
	b.WriteString(padLine("lost", fmt.Sprintf("%d (%s)", s.Lost, ui.FormatLoss(s.Loss))) + "\n\n")

	b.WriteString(padLine("min", ui.FormatLatency(s.Min)) + "\n")
	b.WriteString(padLine("avg", ui.FormatLatency(s.Avg)) + "\n")
	b.WriteString(padLine("max", ui.FormatLatency(s.Max)) + "\n")
	b.WriteString(padLine("recent avg", ui.FormatLatency(s.RecentAvg)) + "\n\n")

	if m.coord.Paused(r.index) {
		b.WriteString(warnStyle.Render("probing paused") + "\n")
	}
	if m.coord.Burst(r.index) {
		b.WriteString(warnStyle.Render("burst mode") + "\n")
	}

	width := m.width - 2
	if width < minSpark {
		width = minSpark
	}
	b.WriteString("\n")
	b.WriteString(ui.RenderSparkline(s.History, width, m.glyphs))
	return b.String()
}
