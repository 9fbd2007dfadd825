// Package analytics records browse-mode visibility transitions. Every time
// a stack level is shown or hidden the navigator emits one event; sinks
// decide what to do with them.
package analytics

import (
	"time"

	"github.com/google/uuid"
)

// BrowseMode classifies which surface the user is looking at.
type BrowseMode int

const (
	// ModeTabs covers the root listing and the selected tab.
	ModeTabs BrowseMode = iota
	// ModeBrowse covers tree descendants.
	ModeBrowse
	// ModeSearch covers search results and search descendants.
	ModeSearch
	// ModeLink covers linked nodes and their descendants.
	ModeLink
)

// String returns the wire label for the mode.
func (m BrowseMode) String() string {
	switch m {
	case ModeTabs:
		return "tabs"
	case ModeBrowse:
		return "browse"
	case ModeSearch:
		return "search"
	case ModeLink:
		return "link"
	default:
		return "unknown"
	}
}

// Event is one visibility transition of a stack level.
type Event struct {
	Session string    `json:"session"`
	Time    time.Time `json:"time"`
	Mode    string    `json:"mode"`
	Visible bool      `json:"visible"`
	ItemID  string    `json:"item_id,omitempty"`
}

// Sink receives visibility events.
type Sink interface {
	// VisibleItems records that the listing identified by itemID became
	// visible or hidden in the given browse mode.
	VisibleItems(mode BrowseMode, visible bool, itemID string)
	// Close flushes and releases the sink.
	Close() error
}

// NewSessionID returns a fresh session identifier for this run.
func NewSessionID() string {
	return uuid.NewString()
}
