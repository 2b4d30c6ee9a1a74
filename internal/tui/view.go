package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the cell geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lay layout
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	lay.contentW = max(10, m.width)
	sb := 0
	if m.sidebar != sidebarHidden {
		sb = sidebarWidth + 1
	}
	lay.mapX = sb
	lay.mapY = headerHeight
	lay.mapW = max(8, lay.contentW-sb)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	header := titleStyle.Render(" shapecanvas ─ terminal shape editor ")
	header += dimStyle.Render(fmt.Sprintf("  tool: %s", m.ctl.Tool))
	if m.ctl.Options.PointMode {
		header += dimStyle.Render("  [points]")
	}
	if m.board.snap {
		header += dimStyle.Render("  [snap]")
	}
	header = lipgloss.NewStyle().Width(lay.contentW).Render(header)

	// Sidebar
	var sidebar string
	if m.sidebar != sidebarHidden {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showProps:
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, m.renderProps(lay))
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderCanvas(lay.mapW, lay.mapH))
	}

	// inspect popup replaces the body while open
	body := mapView
	if m.inspectPopup != "" && !m.showProps {
		maxPopupW := max(20, min(64, lay.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		body = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Left, lipgloss.Center, box)
	}
	if m.sidebar != sidebarHidden {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		w := m.ctl.View.ToWorld(cellPoint(m.hoverCellX, m.hoverCellY))
		coords = dimStyle.Render(fmt.Sprintf("  %s  x=%.1f y=%.1f  %.2fx  ", m.cursor, w.X, w.Y, m.ctl.View.Scale))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

func (m Model) renderProps(lay layout) string {
	title := titleStyle.Render("Properties")
	if s, ok := m.ctl.Selected(); ok {
		title += dimStyle.Render("  " + shapeTitle(s))
	}
	m.tbl.SetHeight(max(3, min(lay.mapH-6, 16)))
	parts := []string{title, m.tbl.View()}
	if m.editing != "" {
		parts = append(parts, m.editing+": "+m.ti.View())
	} else {
		parts = append(parts, dimStyle.Render("enter edit  a close"))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"v select",
		"g pan",
		"r/e/l/t draw",
		". points",
		"# snap",
		"k lock",
		"a props",
		"i inspect",
		"p paste",
		"Tab sidebar",
		"u undo",
		"^s save",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
