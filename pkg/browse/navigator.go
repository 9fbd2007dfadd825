package browse

import (
	"github.com/vanderheijden86/mediadeck/pkg/analytics"
	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// AppBar is the app-bar state derived from the stack after every
// navigation transition.
type AppBar struct {
	// Title is the heading for the current listing.
	Title string
	// CanNavigateBack reports whether a back gesture would pop anything.
	CanNavigateBack bool
	// SearchVisible reports whether search results are on top.
	SearchVisible bool
	// Tabs is the current top-level listing; empty until the root loads.
	Tabs []media.Item
	// SelectedTab is the ID of the selected tab, or "".
	SelectedTab string
}

// Navigator translates UI and data events into stack operations and keeps
// the visible controller, analytics, and app bar in sync with the top of
// the stack. One Navigator serves one media-source session.
//
// Not safe for concurrent use; call only from the UI event loop.
type Navigator struct {
	stack   *Stack
	factory ControllerFactory
	sink    analytics.Sink

	// onAppBarChanged, if set, observes every app-bar refresh.
	onAppBarChanged func(AppBar)

	rootTitle   string
	tabs        []media.Item
	selectedTab *media.Item
}

// NewNavigator builds a navigator over an empty stack.
func NewNavigator(factory ControllerFactory, sink analytics.Sink) *Navigator {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &Navigator{
		stack:   NewStack(),
		factory: factory,
		sink:    sink,
	}
}

// SetAppBarListener registers the app-bar observer. The listener is
// invoked immediately with the current state.
func (n *Navigator) SetAppBarListener(fn func(AppBar)) {
	n.onAppBarChanged = fn
	n.refreshAppBar()
}

// Stack exposes the underlying stack for read-only inspection.
func (n *Navigator) Stack() *Stack { return n.stack }

// ConnectRoot installs the root entry once the source connects. Ignored
// with a diagnostic if a session is already in progress.
func (n *Navigator) ConnectRoot(item media.Item) {
	if n.stack.Size() != 0 {
		debug.Warn("browse: ConnectRoot during active session, ignoring")
		return
	}
	n.rootTitle = item.Title
	n.stack.PushRoot(&item, n.factory.NewRoot())
	n.showCurrent()
	n.refreshAppBar()
}

// UpdateTabs reconciles the top-level listing. An unchanged listing is
// ignored so a source re-delivering identical children does not reset the
// user's position. When the listing changes, the previously selected tab
// is kept if still present, else the first item is selected; only when the
// selection actually moves are tree entries discarded and the tab
// reinserted. Search and link history survives a data-driven tab change.
func (n *Navigator) UpdateTabs(items []media.Item) {
	if media.SameItemList(n.tabs, items) {
		return
	}
	n.tabs = items
	var next *media.Item
	if n.selectedTab != nil {
		for i := range items {
			if items[i].ID == n.selectedTab.ID {
				next = &items[i]
				break
			}
		}
	}
	if next == nil && len(items) > 0 {
		next = &items[0]
	}
	if next == nil {
		n.selectedTab = nil
		n.refreshAppBar()
		return
	}
	if n.selectedTab != nil && media.SameItem(n.selectedTab, next) {
		n.refreshAppBar()
		return
	}
	n.hideCurrent()
	n.destroyAll(n.stack.RemoveTreeExceptRoot())
	n.selectedTab = next
	n.stack.InsertRootTab(next, n.factory.NewBrowse(*next))
	n.showCurrent()
	n.refreshAppBar()
}

// SelectTab handles a user tab selection: the whole stack collapses to the
// root, discarding search and link history, and the tab becomes the floor.
func (n *Navigator) SelectTab(item media.Item) {
	n.hideCurrent()
	n.destroyAll(n.stack.RemoveAllExceptRoot())
	n.selectedTab = &item
	n.stack.InsertRootTab(&item, n.factory.NewBrowse(item))
	n.showCurrent()
	n.refreshAppBar()
}

// NavigateTo descends into an item. Re-navigation to the item already on
// top is a no-op. The new entry inherits the current lineage when the item
// is among the current controller's children, otherwise it is a link.
func (n *Navigator) NavigateTo(item media.Item) {
	if media.SameItem(n.stack.CurrentItem(), &item) {
		return
	}
	typ := n.nextEntryType(item)
	n.hideCurrent()
	n.stack.Push(typ, &item, n.factory.NewBrowse(item))
	n.showCurrent()
	n.refreshAppBar()
}

// nextEntryType classifies the entry a descent into item should produce.
func (n *Navigator) nextEntryType(item media.Item) EntryType {
	cur := n.stack.Peek()
	if cur != nil && cur.Controller != nil && cur.Controller.HasChild(item) {
		return cur.Type.Next()
	}
	return Link
}

// IsStacked reports whether a back gesture has anything to pop. A selected
// tab is a floor, not a history frame: with a tab at index 1 the stack
// must hold more than two entries to be considered stacked.
func (n *Navigator) IsStacked() bool {
	if n.stack.Size() <= 1 {
		return false
	}
	if e := n.stack.At(1); e != nil && e.Type == TreeTab {
		return n.stack.Size() > 2
	}
	return true
}

// NavigateBack pops one level. Returns false when there was nothing to
// pop, letting the host decide what a back gesture means next (for
// example, leaving the browse view).
func (n *Navigator) NavigateBack() bool {
	if !n.IsStacked() {
		return false
	}
	n.hideCurrent()
	top := n.stack.Pop()
	if top != nil {
		top.Destroy()
	}
	n.showCurrent()
	n.refreshAppBar()
	return true
}

// ShowSearchResults opens a fresh search listing, replacing any previous
// search branch while preserving tree and link history beneath it.
func (n *Navigator) ShowSearchResults() {
	n.hideCurrent()
	n.destroyAll(n.stack.RemoveSearchEntries())
	n.stack.PushSearchResults(n.factory.NewSearchResults())
	n.showCurrent()
	n.refreshAppBar()
}

// OnChildrenRemoved reconciles the stack after a content-tree update
// removed children from ctrl's listing. If anything was pruned, the new
// (shallower) top is redisplayed.
func (n *Navigator) OnChildrenRemoved(ctrl Controller, removedIDs map[string]bool) {
	removed := n.stack.RemoveObsoleteEntries(ctrl, removedIDs)
	if len(removed) == 0 {
		return
	}
	debug.Log("browse: pruned %d obsolete entries", len(removed))
	n.destroyAll(removed)
	n.showCurrent()
	n.refreshAppBar()
}

// EndSession tears down every remaining controller and resets the
// navigator for the next source.
func (n *Navigator) EndSession() {
	n.hideCurrent()
	n.stack.DestroyAll()
	n.tabs = nil
	n.selectedTab = nil
	n.rootTitle = ""
	n.refreshAppBar()
}

// showCurrent displays the top entry, lazily recreating its controller if
// a teardown cycle cleared it, and reports the transition to analytics.
func (n *Navigator) showCurrent() {
	e := n.stack.Peek()
	if e == nil {
		return
	}
	if e.Controller == nil {
		e.Controller = n.recreateController(e)
	}
	if e.Controller == nil {
		debug.Warn("browse: no controller for %s entry, cannot show", e.Type)
		return
	}
	e.Controller.Show()
	n.sink.VisibleItems(e.Type.AnalyticsMode(), true, e.ItemID())
}

// hideCurrent hides the top entry and reports the transition.
func (n *Navigator) hideCurrent() {
	e := n.stack.Peek()
	if e == nil || e.Controller == nil {
		return
	}
	e.Controller.Hide()
	n.sink.VisibleItems(e.Type.AnalyticsMode(), false, e.ItemID())
}

// recreateController rebuilds the controller for an entry whose previous
// controller was destroyed by a lifecycle event.
func (n *Navigator) recreateController(e *Entry) Controller {
	switch e.Type {
	case TreeRoot:
		return n.factory.NewRoot()
	case SearchResults:
		return n.factory.NewSearchResults()
	default:
		if e.Item == nil {
			return nil
		}
		return n.factory.NewBrowse(*e.Item)
	}
}

func (n *Navigator) destroyAll(entries []*Entry) {
	for _, e := range entries {
		e.Destroy()
	}
}

// refreshAppBar recomputes app-bar state from the stack and notifies the
// listener.
func (n *Navigator) refreshAppBar() {
	if n.onAppBarChanged == nil {
		return
	}
	n.onAppBarChanged(n.appBar())
}

// AppBarState returns the current app-bar state.
func (n *Navigator) AppBarState() AppBar {
	return n.appBar()
}

func (n *Navigator) appBar() AppBar {
	bar := AppBar{
		Title:           n.rootTitle,
		CanNavigateBack: n.IsStacked(),
		SearchVisible:   n.stack.IsShowingSearchResults(),
		Tabs:            n.tabs,
	}
	if n.selectedTab != nil {
		bar.SelectedTab = n.selectedTab.ID
	}
	if item := n.stack.CurrentItem(); item != nil {
		bar.Title = item.Title
	} else if n.stack.IsShowingSearchResults() {
		bar.Title = "Search results"
	}
	return bar
}
