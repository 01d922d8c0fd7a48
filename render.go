package main

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/cardwall/choreo"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	// Section titles
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	// Header bar (spans full width)
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	// App name in header
	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	// Tab styles
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	// Loading / status text
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	// Footer bar
	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	// Status bar (above footer)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	errorStatusStyle = statusBarStyle.Foreground(colorError)

	// Section containers (history / settings)
	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	// Table styles
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0).
				Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	pinStyle = lipgloss.NewStyle().Foreground(colorWarning)

	// Help key styling
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)
)

// ---------------------------------------------------------------------------
// Tab names
// ---------------------------------------------------------------------------

var tabNames = []string{"Wall", "History", "Settings"}

// ---------------------------------------------------------------------------
// Chrome rendering
// ---------------------------------------------------------------------------

func renderHeader(appName string, activeTab, width int) string {
	name := headerAppStyle.Render(appName)

	var tabs []string
	for i, tab := range tabNames {
		if i == activeTab {
			tabs = append(tabs, activeTabStyle.Render(tab))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab))
		}
	}
	tabBar := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))

	content := name + "  " + tabBar
	if width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(width).Render(content)
}

func (m model) renderStatus(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	style := statusBarStyle
	if m.statusErr {
		style = errorStatusStyle
	}
	if m.width == 0 {
		return style.Render(flat)
	}
	return style.Width(m.width).Render(flat)
}

func (m model) renderFooter(bindings []key.Binding) string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(m.width).Render(content)
}

func (m model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width lines prevent ghosting from the previous frame.
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	main = strings.Join(lines, "\n")
	return main + "\n" + statusLine + "\n" + footer
}

// ---------------------------------------------------------------------------
// Wall view
// ---------------------------------------------------------------------------

// wallHeight is the character height of the card canvas: total height minus
// header (2 lines) and status+footer (2 lines).
func (m model) wallHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) wallView() string {
	cv := newCanvas(m.width, m.wallHeight())
	for i, c := range m.deck.cards {
		box := m.renderCard(c, i == m.cursor && m.activeTab == tabWall)
		x, y := m.cardOrigin(c)
		cv.paint(box, x, y)
	}
	for _, d := range m.deck.decorations {
		p := choreo.RenderedPosition(d)
		cv.paint(pinStyle.Render("✦"), int(math.Round(p.X)), int(math.Round(p.Y)))
	}
	if m.editMode != editNone {
		cv.paint(m.renderPrompt(), 0, m.wallHeight()-1)
	}
	return cv.String()
}

// cardOrigin maps a card's animated geometry to canvas coordinates. Rotation
// reads as a small horizontal lean; when overflow is hidden the box is
// clamped inside the stage rect so mid-flight cards never escape it.
func (m model) cardOrigin(c *card) (int, int) {
	pos := choreo.RenderedPosition(c)
	x := int(math.Round(pos.X + c.rotation/30))
	y := int(math.Round(pos.Y))
	if !m.deck.overflow {
		maxX := m.width - m.cfg.UI.CellWidth + 2
		maxY := m.wallHeight() - m.cfg.UI.CellHeight + 2
		x = clamp(x, 0, maxInt(0, maxX))
		y = clamp(y, 0, maxInt(0, maxY))
	}
	return x, y
}

func (m model) renderCard(c *card, selected bool) string {
	innerW := m.cfg.UI.CellWidth - 4  // border + 1-cell gutter each side
	innerH := m.cfg.UI.CellHeight - 3 // border + 1-row gutter below
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	border := accentFor(c)
	if selected {
		border = colorFocus
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 0).
		Width(innerW).
		Height(innerH)
	if c.scale < 0.95 {
		style = style.Faint(true)
	}
	if selected {
		style = style.Bold(true)
	}

	label := truncate(c.label, innerW)
	body := label
	if c.sticky {
		body += "\n" + pinStyle.Render(truncate("⚲ pinned", innerW))
	}
	return style.Render(body)
}

func (m model) renderPrompt() string {
	verb := "New card"
	if m.editMode == editRename {
		verb = "Rename"
	}
	return cursorStyle.Render(fmt.Sprintf("%s: %s▌", verb, m.editBuf))
}

// accentFor picks a stable accent per card so its color travels with it
// through every reorder.
func accentFor(c *card) lipgloss.Color {
	colors := cardAccentColors()
	h := fnv.New32a()
	h.Write([]byte(c.id))
	return colors[int(h.Sum32())%len(colors)]
}

// ---------------------------------------------------------------------------
// History view
// ---------------------------------------------------------------------------

func (m model) historyView() string {
	if len(m.histRows) == 0 {
		return m.renderSection("Shuffle history", statusStyle.Render("No shuffles recorded yet."))
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-20s %-12s %6s %8s", "When", "Transform", "Cards", "Took")))
	for i, row := range m.histRows {
		line := fmt.Sprintf("%-20s %-12s %6d %7dms",
			row.RequestedAt.Local().Format("2006-01-02 15:04"),
			truncate(row.TransformKey, 12),
			row.CardCount,
			row.DurationMS)
		b.WriteString("\n")
		if i == m.histCursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return m.renderSection("Shuffle history", b.String())
}

// ---------------------------------------------------------------------------
// Settings view
// ---------------------------------------------------------------------------

// settingsRows is the number of toggle rows: one per registered transform
// plus the animate-pinned row at the bottom.
func (m model) settingsRows() int {
	return len(m.registry.Keys()) + 1
}

func (m model) settingsView() string {
	enabled := make(map[string]bool)
	for _, k := range m.registry.Enabled(m.prefs.Transforms) {
		enabled[k] = true
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render("Motion transforms"))
	keys := m.registry.Keys()
	for i, k := range keys {
		d, _ := m.registry.Get(k)
		mark := "[ ]"
		if enabled[k] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, d.DisplayName)
		b.WriteString("\n")
		if i == m.settCursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}

	mark := "[ ]"
	if m.prefs.AnimateSticky {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s Animate pinned cards", mark)
	b.WriteString("\n\n")
	if m.settCursor == len(keys) {
		b.WriteString(cursorStyle.Render("> " + line))
	} else {
		b.WriteString("  " + line)
	}

	return m.renderSection("Settings", b.String())
}

// ---------------------------------------------------------------------------
// Shared section frame
// ---------------------------------------------------------------------------

func (m model) renderSection(title, content string) string {
	contentWidth := maxInt(maxLineWidth(splitLines(content)), lipgloss.Width(title))
	header := padRight(titleStyle.Render(title), contentWidth)
	sepStyle := lipgloss.NewStyle().Foreground(colorSurface1)
	separator := sepStyle.Render(strings.Repeat("─", contentWidth))
	section := listBoxStyle.Render(header + "\n" + separator + "\n" + content)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

// ---------------------------------------------------------------------------
// Small helpers
// ---------------------------------------------------------------------------

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
