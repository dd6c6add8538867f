package dashboard

import tea "github.com/charmbracelet/bubbletea"

// handleKey dispatches key presses. Control actions are addressed by board
// index so they hit the selected host regardless of the current sort.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help and detail views swallow most keys.
	if m.showHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			m.showHelp = false
		}
		return m, nil
	}
	if m.viewMode == ViewDetail {
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc", "enter", "d":
			m.viewMode = ViewList
		default:
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		if len(m.rows) > 0 {
			m.selected = len(m.rows) - 1
		}

	case "s":
		m.sortKey = m.sortKey.cycle()
		m.refresh()

	case "r":
		m.sortDesc = !m.sortDesc
		m.refresh()

	case " ":
		if r := m.selectedRow(); r != nil {
			m.coord.TogglePause(r.index)
		}

	case "b":
		if r := m.selectedRow(); r != nil {
			m.coord.SetBurst(r.index, !m.coord.Burst(r.index))
		}

	case "B":
		all := true
		for _, r := range m.rows {
			if !m.coord.Burst(r.index) {
				all = false
				break
			}
		}
		m.coord.SetBurstAll(!all)

	case "enter", "d":
		if m.selectedRow() != nil {
			m.viewMode = ViewDetail
			m.updateDetailContent()
		}

	case "?", "h":
		m.showHelp = true
	}
	return m, nil
}
