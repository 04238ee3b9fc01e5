package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geodraw/internal/component"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.layout()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" " + m.title + " ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, boxStyle.Width(maxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	case m.inspectPopup != "":
		maxPopupW := max(20, min(48, contentWidth/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Left, lipgloss.Center, box)
	case !m.comp.Mounted():
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render(m.comp.State().String()))
	default:
		mapView = m.renderMap(mapWidth, mapHeight)
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSelector(),
		m.renderMeasurement(),
		m.renderStatus(contentWidth),
	)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderSelector shows the three drawing types with the active one marked.
func (m Model) renderSelector() string {
	opts := make([]string, 0, len(component.Modes))
	for i, mode := range component.Modes {
		label := fmt.Sprintf("%d %s", i+1, mode)
		if mode == m.comp.Mode() {
			label = selectedStyle.Render(label)
		}
		opts = append(opts, label)
	}
	return "Drawing Type: " + strings.Join(opts, " | ")
}

// renderMeasurement is blank until a line or polygon has been drawn.
func (m Model) renderMeasurement() string {
	ms, ok := m.comp.Measurement()
	if !ok {
		return " "
	}
	return "Measurement: " + ms.Label()
}

func (m Model) renderStatus(width int) string {
	status := dimStyle.Render(" " + m.status + " ")
	if m.comp.Mounted() {
		if base := m.comp.BaseLayer(); base.Visible() {
			loaded, pending, failed := base.Tiles.Stats()
			status += dimStyle.Render(fmt.Sprintf(" tiles %d/%d/%d ", loaded, pending, failed))
		}
		status += dimStyle.Render(fmt.Sprintf(" %s z%.0f ", m.comp.Phase(), m.comp.Map().View().Zoom()))
	}
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	left = lipgloss.NewStyle().MaxWidth(max(1, width-lipgloss.Width(coords))).Render(left)
	spacerW := max(0, width-lipgloss.Width(left)-lipgloss.Width(coords))
	return padRight(left, spacerW) + coords
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"1/2/3 type",
		"Enter finish",
		"Esc abort",
		"⌫ undo",
		"↑↓←→ pan",
		"+/- zoom",
		"Tab types",
		"p paste",
		"a features",
		"i inspect",
		"t tiles",
		"v vector",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
