package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wesleyorama2/comparedemo/internal/loadgen"
)

var inputLabels = [inputCount]string{"Username", "Product ID", "Order user ID", "Order product ID"}

// View renders the console.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("comparedemo console"))
	b.WriteString("  ")
	b.WriteString(sectionStyle.Render("architecture: " + m.arch))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.manualPanel(), " ", m.loadPanel()))
	b.WriteString("\n")
	b.WriteString(m.logPanel())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) manualPanel() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Manual calls"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%-17s %s\n", inputLabels[i]+":", in.View())
	}
	if m.createdID != "" {
		b.WriteString(statusStyle.Render(fmt.Sprintf("(Created ID: %s)", m.createdID)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	response := m.response
	if response == "" {
		response = helpStyle.Render("No response yet.")
	} else if m.failed {
		response = errorStyle.Render(response)
	}
	b.WriteString(response)

	return panelStyle.Width(m.panelWidth()).Render(b.String())
}

func (m Model) loadPanel() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Load generation"))
	b.WriteString("\n")

	for i, tier := range loadgen.Tiers() {
		b.WriteString(button(fmt.Sprintf("[%d] %s", i+1, tier.Description), !m.session.Active))
		b.WriteString("\n")
	}
	b.WriteString(button("[s] Stop Load", m.session.Active))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.session.Status))

	return panelStyle.Width(m.panelWidth()).Render(b.String())
}

func button(label string, enabled bool) string {
	if enabled {
		return enabledStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

func (m Model) logPanel() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Load log"))
	b.WriteString("\n")

	entries := m.entries
	if limit := m.logLines(); len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		b.WriteString(helpStyle.Render("Empty."))
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(timestampStyle.Render("[" + e.Time.Format("15:04:05") + "] "))
		b.WriteString(severityStyle(e.Severity).Render(e.Message))
	}

	return panelStyle.Width(2*m.panelWidth() + 3).Render(b.String())
}

// logLines is how many log entries fit under the panels.
func (m Model) logLines() int {
	n := m.height - 22
	if n < 5 {
		n = 5
	}
	return n
}

func (m Model) panelWidth() int {
	w := m.width/2 - 4
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) helpLine() string {
	if m.focus != focusNone {
		return helpStyle.Render("enter: run • esc: leave field • tab: next field • ctrl+c: quit")
	}
	bindings := []struct{ keys, desc string }{
		{m.keys.Low.Help().Key + "/" + m.keys.Medium.Help().Key + "/" + m.keys.High.Help().Key, "start load"},
		{m.keys.Stop.Help().Key, m.keys.Stop.Help().Desc},
		{m.keys.CreateUser.Help().Key, m.keys.CreateUser.Help().Desc},
		{m.keys.GetProduct.Help().Key, m.keys.GetProduct.Help().Desc},
		{m.keys.CreateOrder.Help().Key, m.keys.CreateOrder.Help().Desc},
		{m.keys.ToggleArch.Help().Key, m.keys.ToggleArch.Help().Desc},
		{m.keys.Focus.Help().Key, "edit fields"},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	}
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		parts[i] = kb.keys + ": " + kb.desc
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
