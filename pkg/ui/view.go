package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/mediadeck/pkg/media"
	"github.com/vanderheijden86/mediadeck/pkg/restrict"
)

// chrome rows around the listing: tab row, title row, blank, status bar.
const chromeHeight = 4

func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if m.focus == focusSearch {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading mediadeck..."
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteByte('\n')
	b.WriteString(m.viewTitle())
	b.WriteString("\n\n")

	switch m.focus {
	case focusHelp:
		b.WriteString(m.helpView.View())
	case focusQueue:
		b.WriteString(m.viewQueue())
	default:
		b.WriteString(m.viewBody())
	}

	if m.focus == focusSearch {
		b.WriteByte('\n')
		b.WriteString("/" + m.searchInput.View())
	}
	b.WriteByte('\n')
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewTabs() string {
	bar := m.nav.AppBarState()
	if len(bar.Tabs) == 0 {
		return m.theme.AppBar.Render("mediadeck")
	}
	parts := make([]string, 0, len(bar.Tabs))
	for _, tab := range bar.Tabs {
		label := truncate(tab.Title, 20)
		if tab.ID == bar.SelectedTab {
			parts = append(parts, m.theme.TabActive.Render(label))
		} else {
			parts = append(parts, m.theme.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewTitle() string {
	bar := m.nav.AppBarState()
	title := bar.Title
	if title == "" {
		title = "mediadeck"
	}
	prefix := "  "
	if bar.CanNavigateBack {
		prefix = "< "
	}
	line := m.theme.Title.Render(prefix + truncate(title, m.width-12))
	if m.limiter.Mode() == restrict.Driving {
		line += "  " + m.theme.Restriction.Render("DRIVING")
	}
	return line
}

func (m Model) viewBody() string {
	c := m.visibleController()
	if c == nil {
		return m.theme.Hint.Render("  connecting to library...")
	}
	switch c.state {
	case media.StateLoading:
		return m.theme.Hint.Render("  loading...")
	case media.StateFailed:
		return m.theme.StatusError.Render(fmt.Sprintf("  failed to load: %v", c.err))
	}
	items, limited := m.limiter.Apply(c.items)
	if len(items) == 0 {
		return m.theme.Hint.Render("  nothing here")
	}

	maxRows := m.bodyHeight()
	if limited {
		maxRows--
	}
	start := 0
	if c.cursor >= maxRows {
		start = c.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.viewItem(items[i], i == c.cursor))
		b.WriteByte('\n')
	}
	if limited {
		b.WriteString(m.theme.Hint.Render(fmt.Sprintf("  list limited to %d items while driving", m.limiter.MaxItems())))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewItem(item media.Item, selected bool) string {
	marker := "  "
	style := m.theme.Item
	if selected {
		marker = "> "
		style = m.theme.ItemCursor
	}
	badge := "  "
	switch {
	case item.Browsable:
		badge = "/ "
	case item.Playable:
		badge = m.theme.PlayableBadge.Render("~ ")
	}
	label := truncate(item.Title, m.width-8)
	line := marker + badge + style.Render(label)
	if item.Subtitle != "" {
		line += " " + m.theme.ItemSubtitle.Render(truncate(item.Subtitle, m.width/3))
	}
	return line
}

func (m Model) viewQueue() string {
	items := m.queue.Items()
	if len(items) == 0 {
		return m.theme.Hint.Render("  queue is empty")
	}
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("  Play queue"))
	b.WriteByte('\n')
	maxRows := m.bodyHeight() - 1
	for i, item := range items {
		if i >= maxRows {
			b.WriteString(m.theme.Hint.Render(fmt.Sprintf("  ...and %d more", len(items)-i)))
			b.WriteByte('\n')
			break
		}
		marker := "  "
		style := m.theme.Item
		if i == m.queue.CurrentIndex() {
			marker = "~ "
			style = m.theme.ItemCursor
		}
		b.WriteString(marker + style.Render(truncate(item.Title, m.width-8)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewStatusBar() string {
	if m.statusMsg != "" {
		if m.statusIsError {
			return m.theme.StatusError.Render(" " + m.statusMsg)
		}
		return m.theme.StatusBar.Render(" " + m.statusMsg)
	}
	left := "press ? for help"
	if now, ok := m.queue.NowPlaying(); ok {
		pos := fmt.Sprintf("%d/%d", m.queue.CurrentIndex()+1, m.queue.Len())
		left = fmt.Sprintf("~ %s (%s)", now.Title, pos)
	}
	return m.theme.StatusBar.Render(" " + truncate(left, m.width-2))
}
