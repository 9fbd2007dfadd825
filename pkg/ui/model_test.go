package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mediadeck/pkg/analytics"
	"github.com/vanderheijden86/mediadeck/pkg/browse"
	"github.com/vanderheijden86/mediadeck/pkg/library"
	"github.com/vanderheijden86/mediadeck/pkg/playback"
	"github.com/vanderheijden86/mediadeck/pkg/restrict"
)

// newTestModel wires a model to a fakeSource, bypassing NewModel so tests
// need no sqlite catalog behind the library type.
func newTestModel() (Model, *fakeSource) {
	src := newFakeSource()
	factory := NewControllerFactory(src)
	factory.SetRootID("root")
	return Model{
		factory:     factory,
		nav:         browse.NewNavigator(factory, analytics.Nop{}),
		queue:       playback.NewQueue(),
		limiter:     restrict.NewLimiter(32),
		sink:        analytics.Nop{},
		theme:       DefaultTheme(""),
		searchInput: textinput.New(),
		width:       80,
		height:      24,
		ready:       true,
	}, src
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, _ := m.Update(msg)
	return nm.(Model)
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	return update(t, m, key)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// deliver drains the pending subscription update for nodeID into the
// model, the way the wait command would on a live program.
func deliver(t *testing.T, m Model, nodeID string) Model {
	t.Helper()
	ctrl, ok := m.factory.Lookup(nodeID)
	if !ok {
		t.Fatalf("no live controller for %q", nodeID)
	}
	if ctrl.sub == nil {
		t.Fatalf("controller for %q has no subscription", nodeID)
	}
	select {
	case u := <-ctrl.sub.Updates():
		return update(t, m, ChildrenUpdateMsg{Ctrl: ctrl, Update: u})
	default:
		t.Fatalf("no pending update for %q", nodeID)
	}
	return m
}

// connect brings the model to the steady post-startup state: root
// connected, tabs loaded, first tab selected and its listing delivered.
func connect(t *testing.T, m Model, src *fakeSource) Model {
	t.Helper()
	m = update(t, m, RootLoadedMsg{Root: src.root})
	m = deliver(t, m, "root")
	m = deliver(t, m, "music")
	return m
}

func wantStack(t *testing.T, m Model, want string) {
	t.Helper()
	if got := m.nav.Stack().String(); got != want {
		t.Errorf("stack = %s, want %s", got, want)
	}
}

func TestStartupSelectsFirstTab(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	wantStack(t, m, "TR:Library/TT:Music/")
	bar := m.nav.AppBarState()
	if bar.SelectedTab != "music" {
		t.Errorf("selected tab = %q, want music", bar.SelectedTab)
	}
	if len(bar.Tabs) != 2 {
		t.Errorf("tabs = %d, want 2", len(bar.Tabs))
	}
	if bar.CanNavigateBack {
		t.Error("back should be hidden with only a tab on the stack")
	}
}

func TestEnterOpensFolderAndBackReturns(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	// Cursor starts on album1, the only browsable child of music.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, "album1")
	wantStack(t, m, "TR:Library/TT:Music/TB:First Album/")
	if !m.nav.AppBarState().CanNavigateBack {
		t.Error("back should be available inside a folder")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestEnterPlaysTrack(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	now, ok := m.queue.NowPlaying()
	if !ok || now.ID != "t1" {
		t.Fatalf("now playing = %v, %v; want t1", now, ok)
	}
	if !strings.Contains(m.statusMsg, "Track One") {
		t.Errorf("status = %q, want now-playing notice", m.statusMsg)
	}
}

func TestDrivingBlocksItemsPastTheCap(t *testing.T) {
	m, src := newTestModel()
	m.limiter = restrict.NewLimiter(1)
	m = connect(t, m, src)
	m.limiter.SetMode(restrict.Driving)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.queue.Len() != 0 {
		t.Error("capped item should not play while driving")
	}
	if !m.statusIsError || !strings.Contains(m.statusMsg, "blocked") {
		t.Errorf("status = %q (err=%v), want blocked notice", m.statusMsg, m.statusIsError)
	}
}

func TestDrivingToggleKey(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, runeKey('d'))
	if m.limiter.Mode() != restrict.Driving {
		t.Error("d should switch to driving")
	}
	m = press(t, m, runeKey('d'))
	if m.limiter.Mode() != restrict.Parked {
		t.Error("d again should switch back to parked")
	}
}

func TestTabCycling(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	wantStack(t, m, "TR:Library/TT:Podcasts/")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = deliver(t, m, "music")
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestTabSwitchDiscardsHistory(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, "album1")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	wantStack(t, m, "TR:Library/TT:Podcasts/")
}

func TestSearchFlow(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, runeKey('/'))
	if m.focus != focusSearch {
		t.Fatal("/ should focus the search input")
	}
	m.searchInput.SetValue("track")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusBrowse {
		t.Error("submitting should return focus to the listing")
	}
	wantStack(t, m, "TR:Library/TT:Music/SR/")

	m = update(t, m, SearchResultsMsg{Query: "track", Items: src.children["music"]})
	c := m.visibleController()
	if c == nil || c.kind != kindSearchResults {
		t.Fatal("search results controller should be on top")
	}
	if len(c.Items()) != 3 {
		t.Errorf("results = %d, want 3", len(c.Items()))
	}

	// A second search replaces the previous results entry.
	m = press(t, m, runeKey('/'))
	m.searchInput.SetValue("album")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	wantStack(t, m, "TR:Library/TT:Music/SR/")
}

func TestSearchEscapeCancels(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, runeKey('/'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusBrowse {
		t.Error("esc should leave search")
	}
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestEmptySearchIsIgnored(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, runeKey('/'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestRemovalPrunesStack(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, "album1")

	m = update(t, m, RemovalMsg{Removal: library.Removal{
		NodeID:     "music",
		RemovedIDs: map[string]bool{"album1": true},
	}})
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestRemovalForUnknownNodeIsIgnored(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = update(t, m, RemovalMsg{Removal: library.Removal{
		NodeID:     "ghost",
		RemovedIDs: map[string]bool{"x": true},
	}})
	wantStack(t, m, "TR:Library/TT:Music/")
}

func TestHelpToggle(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = press(t, m, runeKey('?'))
	if m.focus != focusHelp {
		t.Fatal("? should open help")
	}
	m = press(t, m, runeKey('?'))
	if m.focus != focusBrowse {
		t.Error("? again should close help")
	}
}

func TestQuitEndsSession(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, "album1")

	m = press(t, m, runeKey('q'))
	if got := m.nav.Stack().Size(); got != 0 {
		t.Errorf("stack size after quit = %d, want 0", got)
	}
}

func TestStatusClearHonorsSequence(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	m = press(t, m, runeKey('d'))
	stale := m.statusSeq
	m = press(t, m, runeKey('d'))

	m = update(t, m, statusClearMsg{seq: stale})
	if m.statusMsg == "" {
		t.Error("stale clear should not wipe a newer status")
	}
	m = update(t, m, statusClearMsg{seq: m.statusSeq})
	if m.statusMsg != "" {
		t.Errorf("status = %q after clear, want empty", m.statusMsg)
	}
}

func TestViewShowsListing(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	for _, want := range []string{"Music", "Podcasts", "First Album", "Track One"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewLimitedHintWhileDriving(t *testing.T) {
	m, src := newTestModel()
	m.limiter = restrict.NewLimiter(1)
	m = connect(t, m, src)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.limiter.SetMode(restrict.Driving)

	out := m.View()
	if !strings.Contains(out, "list limited") {
		t.Error("view should mention the driving cap")
	}
	if strings.Contains(out, "Track Two") {
		t.Error("capped items should not render while driving")
	}
}

func TestRootTabOrderHonorsDefault(t *testing.T) {
	m, src := newTestModel()
	m.defaultTab = "podcasts"
	m = update(t, m, RootLoadedMsg{Root: src.root})
	m = deliver(t, m, "root")

	wantStack(t, m, "TR:Library/TT:Podcasts/")
}

func TestEnqueueKeyAddsWithoutJumping(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	// Play t1, then queue t2 behind it.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runeKey('a'))

	now, _ := m.queue.NowPlaying()
	if now.ID != "t1" {
		t.Errorf("enqueue moved playback to %s", now.ID)
	}
	if m.queue.Len() != 2 {
		t.Fatalf("queue length = %d, want 2", m.queue.Len())
	}
	if !m.queue.Next() {
		t.Fatal("Next should reach the queued track")
	}
	if now, _ := m.queue.NowPlaying(); now.ID != "t2" {
		t.Errorf("next track = %s, want t2", now.ID)
	}
}

func TestEnqueueIgnoresFolders(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)

	// Cursor starts on album1, a folder.
	m = press(t, m, runeKey('a'))
	if m.queue.Len() != 0 {
		t.Error("folders must not be queued")
	}
}

func TestQueueOverlay(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, runeKey('e'))
	if m.focus != focusQueue {
		t.Fatal("e should open the queue view")
	}
	if out := m.View(); !strings.Contains(out, "Play queue") || !strings.Contains(out, "Track One") {
		t.Error("queue view should list queued tracks")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusBrowse {
		t.Error("esc should close the queue view")
	}
}

func TestQueueClearKey(t *testing.T) {
	m, src := newTestModel()
	m = connect(t, m, src)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, runeKey('e'))
	m = press(t, m, runeKey('c'))
	if m.queue.Len() != 0 {
		t.Error("c should clear the queue")
	}
}
