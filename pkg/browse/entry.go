// Package browse implements the navigation state machine at the heart of
// mediadeck: an ordered stack of entries recording the user's path through
// a media source's content tree, its search results, and linked nodes.
//
// The stack supports three independent lineages — Tree, Search, Link —
// that may interleave. Structural invariants: the tree root, if present,
// occupies index 0 and appears nowhere else; the selected tab, if present,
// occupies exactly index 1.
//
// Nothing in this package is safe for concurrent use. All mutation happens
// on the UI event loop, and operations are not re-entrant: a callback must
// not mutate the stack it is being invoked from.
package browse

import (
	"github.com/vanderheijden86/mediadeck/pkg/analytics"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// EntryType tags a stack entry with its lineage and depth-role.
type EntryType int

const (
	// TreeRoot is the root of the content tree. At most one, at index 0.
	TreeRoot EntryType = iota
	// TreeTab is a selected top-level tab. At most one, at index 1.
	TreeTab
	// TreeBrowse is a descendant reached by browsing the tree.
	TreeBrowse
	// SearchResults is the root of a search listing. Carries no item.
	SearchResults
	// SearchBrowse is a descendant reached from search results.
	SearchBrowse
	// Link is a node reached outside the current controller's children.
	Link
	// LinkBrowse is a descendant reached by browsing under a link.
	LinkBrowse
)

// String returns the short token form used in logs and test fixtures.
func (t EntryType) String() string {
	switch t {
	case TreeRoot:
		return "TR"
	case TreeTab:
		return "TT"
	case TreeBrowse:
		return "TB"
	case SearchResults:
		return "SR"
	case SearchBrowse:
		return "SB"
	case Link:
		return "LN"
	case LinkBrowse:
		return "LB"
	default:
		return "??"
	}
}

// Next returns the type a child entry takes when the user browses one
// level deeper from an entry of this type. This table is the single source
// of truth for how lineage is inherited down the stack.
func (t EntryType) Next() EntryType {
	switch t {
	case TreeRoot, TreeTab, TreeBrowse:
		return TreeBrowse
	case SearchResults, SearchBrowse:
		return SearchBrowse
	case Link, LinkBrowse:
		return LinkBrowse
	default:
		return TreeBrowse
	}
}

// AnalyticsMode maps the entry type to the browse mode reported on
// show/hide transitions.
func (t EntryType) AnalyticsMode() analytics.BrowseMode {
	switch t {
	case TreeRoot, TreeTab:
		return analytics.ModeTabs
	case TreeBrowse:
		return analytics.ModeBrowse
	case SearchResults, SearchBrowse:
		return analytics.ModeSearch
	case Link, LinkBrowse:
		return analytics.ModeLink
	default:
		return analytics.ModeBrowse
	}
}

// isTree reports whether the type belongs to the tree lineage below root.
func (t EntryType) isTree() bool {
	return t == TreeTab || t == TreeBrowse
}

// isSearch reports whether the type belongs to the search lineage.
func (t EntryType) isSearch() bool {
	return t == SearchResults || t == SearchBrowse
}

// Entry is one level of navigation history. It exclusively owns its
// controller: destroying the entry destroys the controller exactly once.
//
// Item is never nil for selected-node types. SearchResults carries no
// item; TreeRoot may carry the root item so its ID is reachable, but
// nothing requires it.
//
// Controller may be nil after a teardown/recreate cycle (for example a
// terminal resize that forced the view tree to be rebuilt); the navigator
// lazily recreates it on next display.
type Entry struct {
	Type       EntryType
	Item       *media.Item
	Controller Controller

	destroyed bool
}

// ItemID returns the entry's item ID, or "" when the entry carries no item.
func (e *Entry) ItemID() string {
	if e.Item == nil {
		return ""
	}
	return e.Item.ID
}

// Destroy tears down the owned controller. Subsequent calls are no-ops.
func (e *Entry) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.Controller != nil {
		e.Controller.Destroy()
		e.Controller = nil
	}
}
