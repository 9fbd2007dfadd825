// Package ui is the Bubble Tea front end: it owns the program model,
// renders the browse stack's top controller, and translates key and data
// events into navigator calls.
package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mediadeck/pkg/analytics"
	"github.com/vanderheijden86/mediadeck/pkg/browse"
	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/library"
	"github.com/vanderheijden86/mediadeck/pkg/media"
	"github.com/vanderheijden86/mediadeck/pkg/playback"
	"github.com/vanderheijden86/mediadeck/pkg/restrict"
)

// focus represents which UI element has keyboard focus.
type focus int

const (
	focusBrowse focus = iota
	focusSearch
	focusHelp
	focusQueue
)

// Options configures a Model.
type Options struct {
	Sink       analytics.Sink
	Limiter    *restrict.Limiter
	Accent     string
	DefaultTab string
}

// Model is the Bubble Tea model for the media browser.
type Model struct {
	source  *library.Library
	watcher *library.Watcher
	factory *ControllerFactory
	nav     *browse.Navigator
	queue   *playback.Queue
	limiter *restrict.Limiter
	sink    analytics.Sink
	theme   Theme

	defaultTab  string
	pickedTab   bool
	searchInput textinput.Model
	helpView    viewport.Model
	focus       focus

	width, height int
	ready         bool

	statusMsg     string
	statusIsError bool
	statusSeq     int
}

// NewModel builds the model for one library session.
func NewModel(lib *library.Library, watcher *library.Watcher, opts Options) Model {
	if opts.Sink == nil {
		opts.Sink = analytics.Nop{}
	}
	if opts.Limiter == nil {
		opts.Limiter = restrict.NewLimiter(32)
	}
	factory := NewControllerFactory(lib)
	input := textinput.New()
	input.Placeholder = "search the library"
	input.CharLimit = 80

	return Model{
		source:      lib,
		watcher:     watcher,
		factory:     factory,
		nav:         browse.NewNavigator(factory, opts.Sink),
		queue:       playback.NewQueue(),
		limiter:     opts.Limiter,
		sink:        opts.Sink,
		theme:       DefaultTheme(opts.Accent),
		defaultTab:  opts.DefaultTab,
		searchInput: input,
		width:       100,
		height:      30,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadRootCmd(m.source),
		waitRemovalCmd(m.source),
	}
	if m.watcher != nil {
		cmds = append(cmds, watchCatalogCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.helpView = viewport.New(msg.Width, m.bodyHeight())
		m.helpView.SetContent(renderHelp(msg.Width))

	case RootLoadedMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("cannot load library: %v", msg.Err), true))
			break
		}
		m.factory.SetRootID(msg.Root.ID)
		m.nav.ConnectRoot(msg.Root)

	case ChildrenUpdateMsg:
		msg.Ctrl.apply(msg.Update)
		if msg.Ctrl.kind == kindRoot && msg.Update.State == media.StateLoaded {
			items := msg.Update.Items
			if !m.pickedTab && m.defaultTab != "" {
				items = preferTab(items, m.defaultTab)
				m.pickedTab = true
			}
			m.nav.UpdateTabs(items)
		}
		if cmd := waitForChildrenCmd(msg.Ctrl); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case CatalogChangedMsg:
		debug.Log("ui: catalog changed on disk, refreshing")
		cmds = append(cmds, refreshCmd(m.source))
		if m.watcher != nil {
			cmds = append(cmds, watchCatalogCmd(m.watcher))
		}

	case RefreshDoneMsg:
		// Subscribed controllers receive their updates individually.

	case RemovalMsg:
		if ctrl, ok := m.factory.Lookup(msg.Removal.NodeID); ok {
			m.nav.OnChildrenRemoved(ctrl, msg.Removal.RemovedIDs)
		}
		cmds = append(cmds, waitRemovalCmd(m.source))

	case SearchResultsMsg:
		if c := m.visibleController(); c != nil && c.kind == kindSearchResults {
			c.setSearchResults(msg.Items, msg.Err)
			if msg.Err == nil && len(msg.Items) == 0 {
				cmds = append(cmds, m.setStatus(fmt.Sprintf("no results for %q", msg.Query), false))
			}
		}

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.factory.TakePending()...)
	return m, tea.Batch(cmds...)
}

// handleKey dispatches a key press according to the current focus.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.shutdown()
	}
	switch m.focus {
	case focusHelp:
		return m.handleHelpKeys(msg)
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusQueue:
		return m.handleQueueKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m Model) handleQueueKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "e", "esc":
		m.focus = focusBrowse
		return m, nil
	case "q":
		return m, m.shutdown()
	case "n":
		if m.queue.Next() {
			return m, m.nowPlayingStatus()
		}
	case "p":
		if m.queue.Prev() {
			return m, m.nowPlayingStatus()
		}
	case "c":
		m.queue.Clear()
		return m, m.setStatus("queue cleared", false)
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.focus = focusBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.focus = focusBrowse
		return m, nil
	case tea.KeyEnter:
		query := m.searchInput.Value()
		m.searchInput.Blur()
		m.focus = focusBrowse
		if query == "" {
			return m, nil
		}
		m.nav.ShowSearchResults()
		return m, searchCmd(m.source, query)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.shutdown()
	case "?":
		m.focus = focusHelp
		m.helpView.SetContent(renderHelp(m.width))
		return m, nil
	case "/":
		m.focus = focusSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case "up", "k":
		if c := m.visibleController(); c != nil {
			c.moveCursor(-1)
		}
	case "down", "j":
		if c := m.visibleController(); c != nil {
			c.moveCursor(1)
		}
	case "enter":
		return m.activateSelected()
	case "backspace", "h":
		if !m.nav.NavigateBack() {
			return m, m.setStatus("top of the library", false)
		}
	case "left":
		return m.cycleTab(-1)
	case "right":
		return m.cycleTab(1)
	case "n":
		if m.queue.Next() {
			return m, m.nowPlayingStatus()
		}
	case "p":
		if m.queue.Prev() {
			return m, m.nowPlayingStatus()
		}
	case "a":
		return m.enqueueSelected()
	case "e":
		m.focus = focusQueue
		return m, nil
	case "d":
		mode := m.limiter.Toggle()
		return m, m.setStatus(fmt.Sprintf("restriction mode: %s", mode), false)
	case "y":
		return m, m.copySelected()
	}
	return m, nil
}

// enqueueSelected appends the selected track to the queue without
// interrupting what is playing.
func (m Model) enqueueSelected() (Model, tea.Cmd) {
	c := m.visibleController()
	if c == nil {
		return m, nil
	}
	item, ok := c.selected()
	if !ok || !item.Playable {
		return m, nil
	}
	if !m.limiter.Allows(c.cursor) {
		return m, m.setStatus("blocked while driving", true)
	}
	m.queue.Enqueue(item)
	return m, m.setStatus(fmt.Sprintf("queued %s", item.Title), false)
}

// activateSelected opens a browsable item or plays a playable one,
// honoring the driving restriction cap.
func (m Model) activateSelected() (Model, tea.Cmd) {
	c := m.visibleController()
	if c == nil {
		return m, nil
	}
	item, ok := c.selected()
	if !ok {
		return m, nil
	}
	if !m.limiter.Allows(c.cursor) {
		return m, m.setStatus("blocked while driving", true)
	}
	switch {
	case item.Browsable:
		m.nav.NavigateTo(item)
	case item.Playable:
		m.queue.PlayNow(item)
		return m, m.nowPlayingStatus()
	}
	return m, nil
}

// cycleTab selects the previous or next tab relative to the current one.
func (m Model) cycleTab(delta int) (Model, tea.Cmd) {
	bar := m.nav.AppBarState()
	if len(bar.Tabs) == 0 {
		return m, nil
	}
	idx := 0
	for i, tab := range bar.Tabs {
		if tab.ID == bar.SelectedTab {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(bar.Tabs)) % len(bar.Tabs)
	m.nav.SelectTab(bar.Tabs[idx])
	return m, nil
}

// copySelected puts the selected item's ID on the system clipboard.
func (m Model) copySelected() tea.Cmd {
	c := m.visibleController()
	if c == nil {
		return nil
	}
	item, ok := c.selected()
	if !ok {
		return nil
	}
	if err := clipboard.WriteAll(item.ID); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard: %v", err), true)
	}
	return m.setStatus(fmt.Sprintf("copied %s", item.ID), false)
}

// visibleController returns the stack's top controller, or nil.
func (m Model) visibleController() *BrowseViewController {
	c, _ := m.nav.Stack().CurrentController().(*BrowseViewController)
	return c
}

// setStatus installs a transient status message.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusSeq++
	return clearStatusCmd(m.statusSeq)
}

func (m *Model) nowPlayingStatus() tea.Cmd {
	if now, ok := m.queue.NowPlaying(); ok {
		return m.setStatus(fmt.Sprintf("playing %s", now.Title), false)
	}
	return nil
}

// shutdown ends the session and quits.
func (m Model) shutdown() tea.Cmd {
	m.nav.EndSession()
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.sink.Close()
	return tea.Quit
}

// preferTab moves the configured default tab to the front so the
// navigator's first-item fallback selects it on initial load.
func preferTab(items []media.Item, tabID string) []media.Item {
	for i, it := range items {
		if it.ID == tabID && i > 0 {
			out := make([]media.Item, 0, len(items))
			out = append(out, items[i])
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out
		}
	}
	return items
}
