package dashboard

import "strings"

// helpView renders the key reference overlay.
func (m Model) helpView() string {
	rows := []struct{ key, action string }{
		{"j / down", "select next host"},
		{"k / up", "select previous host"},
		{"g / home", "select first host"},
		{"G / end", "select last host"},
		{"space", "pause or resume probing the selected host"},
		{"b", "toggle burst mode for the selected host"},
		{"B", "toggle burst mode for all hosts"},
		{"enter / d", "open the detail view"},
		{"s", "cycle sort: input, name, latency, loss"},
		{"r", "reverse the sort order"},
		{"?", "show this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pingboard keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(headerStyle.Render(padRight(r.key, 12)))
		b.WriteString(r.action)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("press any key to return"))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
