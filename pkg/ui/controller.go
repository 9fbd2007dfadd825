package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mediadeck/pkg/browse"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// controllerKind distinguishes the three controller variants.
type controllerKind int

const (
	kindRoot controllerKind = iota
	kindSearchResults
	kindBrowse
)

// BrowseViewController implements browse.Controller for the terminal UI.
// One controller renders the children listing of one node (or the current
// search results), tracks its own cursor, and owns the subscription that
// feeds it. The stack owns controllers through entries; the model routes
// subscription messages back to them by pointer identity.
type BrowseViewController struct {
	kind   controllerKind
	nodeID string
	title  string

	source media.Source
	sub    *media.Subscription

	items   []media.Item
	state   media.LoadState
	err     error
	cursor  int
	visible bool

	// onSubscribed lets the factory arm a wait command whenever a
	// controller opens its subscription.
	onSubscribed func(*BrowseViewController)
}

// Show implements browse.Controller. The first Show subscribes to the
// node's children; search controllers receive items via SearchResultsMsg
// instead.
func (c *BrowseViewController) Show() {
	c.visible = true
	if c.kind != kindSearchResults && c.sub == nil {
		c.state = media.StateLoading
		c.sub = c.source.Subscribe(c.nodeID)
		if c.onSubscribed != nil {
			c.onSubscribed(c)
		}
	}
}

// Hide implements browse.Controller.
func (c *BrowseViewController) Hide() {
	c.visible = false
}

// Destroy implements browse.Controller.
func (c *BrowseViewController) Destroy() {
	c.visible = false
	if c.sub != nil {
		c.sub.Close()
		c.sub = nil
	}
	c.items = nil
}

// HasChild implements browse.Controller against the currently loaded
// listing.
func (c *BrowseViewController) HasChild(item media.Item) bool {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			return true
		}
	}
	return false
}

// Visible reports whether the controller is currently shown.
func (c *BrowseViewController) Visible() bool { return c.visible }

// Items returns the loaded listing.
func (c *BrowseViewController) Items() []media.Item { return c.items }

// apply folds a subscription delivery into the controller.
func (c *BrowseViewController) apply(u media.ChildrenUpdate) {
	c.state = u.State
	c.err = u.Err
	if u.State == media.StateLoaded {
		c.items = u.Items
		c.clampCursor()
	}
}

// setSearchResults installs a search outcome on a search controller.
func (c *BrowseViewController) setSearchResults(items []media.Item, err error) {
	if err != nil {
		c.state = media.StateFailed
		c.err = err
		return
	}
	c.state = media.StateLoaded
	c.items = items
	c.clampCursor()
}

func (c *BrowseViewController) clampCursor() {
	if c.cursor >= len(c.items) {
		c.cursor = len(c.items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// moveCursor shifts the cursor by delta within the listing bounds.
func (c *BrowseViewController) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
}

// selected returns the item under the cursor. ok is false on an empty
// listing.
func (c *BrowseViewController) selected() (media.Item, bool) {
	if len(c.items) == 0 || c.cursor >= len(c.items) {
		return media.Item{}, false
	}
	return c.items[c.cursor], true
}

// ControllerFactory builds BrowseViewControllers bound to the source and
// registers them so the model can route messages to them. Implements
// browse.ControllerFactory.
type ControllerFactory struct {
	source media.Source
	rootID string

	// live tracks the active controller per node, newest wins. Removal
	// deltas are routed through this registry.
	live map[string]*BrowseViewController

	// pending holds wait commands for subscriptions opened during the
	// current update cycle; the model drains them into its command batch.
	pending []tea.Cmd
}

// NewControllerFactory builds the factory for one source session.
func NewControllerFactory(source media.Source) *ControllerFactory {
	return &ControllerFactory{
		source: source,
		live:   make(map[string]*BrowseViewController),
	}
}

// SetRootID fixes the node ID the root controller subscribes to.
func (f *ControllerFactory) SetRootID(id string) { f.rootID = id }

// NewRoot implements browse.ControllerFactory.
func (f *ControllerFactory) NewRoot() browse.Controller {
	c := &BrowseViewController{kind: kindRoot, nodeID: f.rootID, source: f.source}
	f.register(c)
	return c
}

// NewSearchResults implements browse.ControllerFactory.
func (f *ControllerFactory) NewSearchResults() browse.Controller {
	c := &BrowseViewController{kind: kindSearchResults, title: "Search results", source: f.source, state: media.StateLoading}
	return c
}

// NewBrowse implements browse.ControllerFactory.
func (f *ControllerFactory) NewBrowse(item media.Item) browse.Controller {
	c := &BrowseViewController{kind: kindBrowse, nodeID: item.ID, title: item.Title, source: f.source}
	f.register(c)
	return c
}

func (f *ControllerFactory) register(c *BrowseViewController) {
	c.onSubscribed = f.Arm
	f.live[c.nodeID] = c
}

// Lookup returns the live controller for a node, if any.
func (f *ControllerFactory) Lookup(nodeID string) (*BrowseViewController, bool) {
	c, ok := f.live[nodeID]
	return c, ok
}

// Arm queues a children-wait command for a controller that subscribed
// during this update cycle.
func (f *ControllerFactory) Arm(c *BrowseViewController) {
	if cmd := waitForChildrenCmd(c); cmd != nil {
		f.pending = append(f.pending, cmd)
	}
}

// TakePending returns and clears the queued wait commands.
func (f *ControllerFactory) TakePending() []tea.Cmd {
	cmds := f.pending
	f.pending = nil
	return cmds
}
