// Package media defines the item model and data-source contract shared by
// the browse core and its concrete backends.
//
// An Item is an opaque identity plus display metadata. The browse stack
// only ever compares items by ID; everything else is presentation.
package media

// Item is one node of a media source's content tree.
type Item struct {
	// ID is the stable identifier used for all stack bookkeeping.
	ID string
	// Title is the primary display string.
	Title string
	// Subtitle is secondary display text (artist, show, folder hint).
	Subtitle string
	// Browsable indicates the node has (or may have) children.
	Browsable bool
	// Playable indicates the node can be enqueued for playback.
	Playable bool
	// URI locates the underlying content. Empty for pure containers.
	URI string
}

// SameItem reports whether two items denote the same node. Either side may
// be nil; two nils are not the same item (there is no node to agree on).
func SameItem(a, b *Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID
}

// SameItemList reports whether two listings contain the same items in the
// same order, compared by ID. Used to suppress no-op tab resets when a
// source re-delivers an unchanged top-level listing.
func SameItemList(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
