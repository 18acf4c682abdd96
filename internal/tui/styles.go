package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/sections"
)

var (
	accent = lipgloss.Color("62")
	muted  = lipgloss.Color("241")

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(accent)

	selectedBlurredStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("238"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(muted)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(accent).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	emptyDesktopStyle = lipgloss.NewStyle().
				Foreground(muted).
				Align(lipgloss.Center, lipgloss.Center)
)

// truncateLabel shortens s to at most width terminal cells, marking the cut
// with an ellipsis.
func truncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func renderStatusBar(source string, snap desktop.Snapshot, width int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{dot + " " + source}
	if snap.ActiveApp != "" {
		parts = append(parts, "front:"+snap.ActiveApp)
	}
	parts = append(parts,
		fmt.Sprintf("windows:%d", snap.OpenCount()),
		fmt.Sprintf("trash:%d", len(snap.Trash)),
	)

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

func renderIcons(icons []desktop.Item, selected int, focused bool, width, height int) string {
	lines := []string{titleStyle.Render("Desktop"), ""}
	label := width - 4
	for i, it := range icons {
		glyph := "📄"
		if it.IsFolder {
			glyph = "📁"
		}
		row := glyph + " " + truncateLabel(it.Name, label)
		lines = append(lines, pick(i == selected, focused).Render(row))
	}
	if len(icons) == 0 {
		lines = append(lines, disabledStyle.Render("(everything is in the trash)"))
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func renderDock(dock []desktop.DockApp, selected int, focused bool, width int) string {
	cells := make([]string, 0, len(dock))
	for i, app := range dock {
		label := " " + truncateLabel(app.Name, 12) + " "
		switch {
		case i == selected && focused:
			cells = append(cells, selectedStyle.Render(label))
		case !app.CanOpen:
			cells = append(cells, disabledStyle.Render(label))
		default:
			cells = append(cells, itemStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	border := lipgloss.NewStyle().
		Width(width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(focused)).
		Align(lipgloss.Center)
	return border.Render(row)
}

func renderSidebar(active string, selected int, focused bool) string {
	var lines []string
	for i, item := range sections.Sidebar() {
		label := item.Label
		if item.Section == active {
			label = "▸ " + label
		} else {
			label = "  " + label
		}
		lines = append(lines, pick(i == selected, focused).Render(label))
	}
	return lipgloss.NewStyle().
		Width(14).
		PaddingRight(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(muted).
		Render(strings.Join(lines, "\n"))
}

func renderWindowFrame(title, sidebar string, content []string, focused bool, width, height int) string {
	innerWidth := max(width-2, 1)
	innerHeight := max(height-3, 1)

	bodyWidth := innerWidth
	if sidebar != "" {
		bodyWidth -= lipgloss.Width(sidebar) + 1
	}
	if len(content) > innerHeight {
		content = content[:innerHeight]
	}
	body := lipgloss.NewStyle().
		Width(max(bodyWidth, 1)).
		Height(innerHeight).
		Render(strings.Join(content, "\n"))
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	header := titleStyle.Render(truncateLabel(title, innerWidth-2))
	return lipgloss.NewStyle().
		Width(innerWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(focused)).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func renderHelpBar(help, notice, errMsg string, width int) string {
	var status string
	switch {
	case errMsg != "":
		status = errorStyle.Render(errMsg)
	case notice != "":
		status = noticeStyle.Render(notice)
	}
	line := lipgloss.NewStyle().Foreground(muted).Render(help)
	if status != "" {
		line = status + "  " + line
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(line)
}

func pick(selected, focused bool) lipgloss.Style {
	switch {
	case selected && focused:
		return selectedStyle
	case selected:
		return selectedBlurredStyle
	default:
		return itemStyle
	}
}

func borderColor(focused bool) lipgloss.Color {
	if focused {
		return accent
	}
	return muted
}
