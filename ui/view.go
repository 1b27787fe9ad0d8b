package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ezoic/sipp/chart"
)

// WindowTitle is shown at the top of the screen.
const WindowTitle = "SIPP - Social Impact Prediction Platform"

const (
	dropdownWidth = 30
	barWidth      = 40
	textWidth     = 60
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4CAF50")).Padding(0, 1)
	headerStyle      = lipgloss.NewStyle().Bold(true).MarginTop(1)
	boxStyle         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Width(dropdownWidth)
	focusBoxStyle    = boxStyle.BorderForeground(lipgloss.Color("#4CAF50"))
	itemStyle        = lipgloss.NewStyle().PaddingLeft(2)
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	buttonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#555555")).Padding(0, 2).MarginTop(1)
	focusButtonStyle = buttonStyle.Background(lipgloss.Color("#4CAF50")).Bold(true)
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Bold(true).MarginTop(1)
	barStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#008080"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	prosLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32")).MarginTop(1)
	consLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C62828")).MarginTop(1)
	wrapStyle        = lipgloss.NewStyle().Width(textWidth)
	dialogStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#C62828")).Padding(1, 3).Width(textWidth)
	dialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C62828"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(WindowTitle))
	b.WriteString("\n")

	if m.dialog != nil {
		b.WriteString("\n")
		b.WriteString(m.dialogView())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render("Select a District"))
	b.WriteString("\n")
	b.WriteString(m.dropdownView())
	b.WriteString("\n")

	button := buttonStyle
	if m.focus == focusButton {
		button = focusButtonStyle
	}
	b.WriteString(button.Render("Predict Impact"))
	b.WriteString("\n")

	b.WriteString(m.resultView())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m Model) dropdownView() string {
	box := boxStyle
	if m.focus == focusDropdown {
		box = focusBoxStyle
	}

	label := m.selected
	if label == "" {
		label = mutedStyle.Render("(none)")
	}
	arrow := "▾"
	if m.open {
		arrow = "▴"
	}
	closed := box.Render(fmt.Sprintf("%s %s", arrow, label))
	if !m.open {
		return closed
	}

	items := make([]string, len(m.districts))
	for i, d := range m.districts {
		if i == m.cursor {
			items[i] = cursorStyle.Render("> " + d)
		} else {
			items[i] = itemStyle.Render(d)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, closed, box.Render(strings.Join(items, "\n")))
}

func (m Model) resultView() string {
	if m.result == nil {
		return ""
	}
	res := m.result

	lines := []string{
		resultStyle.Render(res.Headline()),
		fmt.Sprintf("%s %s %s",
			chart.BarLabel,
			barStyle.Render(chart.TextBar(res.Score, barWidth)),
			mutedStyle.Render(fmt.Sprintf("%.0f–%.0f", chart.YMin, chart.YMax)),
		),
	}
	if m.chartPath != "" {
		lines = append(lines, mutedStyle.Render("Chart: "+m.chartPath))
	}
	lines = append(lines,
		prosLabelStyle.Render("Pros:"),
		wrapStyle.Render(res.Tier.Pros()),
		consLabelStyle.Render("Cons:"),
		wrapStyle.Render(res.Tier.Cons()),
	)
	return strings.Join(lines, "\n")
}

func (m Model) dialogView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render(m.dialog.Title),
		"",
		m.dialog.Message,
		"",
		mutedStyle.Render("enter/esc to dismiss"),
	)
	return dialogStyle.Render(body)
}
