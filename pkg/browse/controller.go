package browse

import "github.com/vanderheijden86/mediadeck/pkg/media"

// Controller renders the children listing for one stack entry. The stack
// owns controllers through entries and calls them from the UI event loop.
//
// Controllers come in three variants (root, search results, browse) built
// by a ControllerFactory; the stack treats them uniformly.
type Controller interface {
	// Show makes the controller's view visible.
	Show()
	// Hide removes the controller's view from display without destroying it.
	Hide()
	// Destroy releases the controller's resources. Called exactly once,
	// by the owning entry.
	Destroy()
	// HasChild reports whether the item is among the controller's
	// currently loaded children. Drives lineage classification when the
	// user navigates into an item.
	HasChild(media.Item) bool
}

// ControllerFactory builds the controller variants. The UI layer supplies
// the real implementation; tests use fakes.
type ControllerFactory interface {
	// NewRoot builds the controller for the tree root listing.
	NewRoot() Controller
	// NewSearchResults builds the controller for a search listing.
	NewSearchResults() Controller
	// NewBrowse builds the controller for the children of one item.
	// Used for tabs, tree descendants, links, and search descendants alike.
	NewBrowse(item media.Item) Controller
}
