package browse

import (
	"strings"

	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// Stack is the ordered navigation history for one media-source session.
// It maps 1:1 onto what is visually back-stacked. Entries are uniquely
// owned: removing an entry transfers responsibility for destroying its
// controller to the caller, except for DestroyAll which tears down
// everything in place.
//
// Misuse of the structural operations (PushRoot on a non-empty stack,
// InsertRootTab without a root, pushing a root or tab type through Push)
// logs a diagnostic and leaves the stack unchanged. Nothing here panics;
// a bookkeeping inconsistency must never take down the browse screen.
type Stack struct {
	entries []*Entry
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Size returns the number of entries.
func (s *Stack) Size() int { return len(s.entries) }

// At returns the entry at index i, or nil when out of range.
func (s *Stack) At(i int) *Entry {
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return s.entries[i]
}

// PushRoot installs the tree root as entry 0. It succeeds only on an
// empty stack; anywhere else a root is a caller bug.
func (s *Stack) PushRoot(item *media.Item, ctrl Controller) {
	if len(s.entries) != 0 {
		debug.Warn("browse: PushRoot on non-empty stack (size=%d), ignoring", len(s.entries))
		return
	}
	s.entries = append(s.entries, &Entry{Type: TreeRoot, Item: item, Controller: ctrl})
}

// InsertRootTab inserts the selected tab at index 1, shifting everything
// from index 1 onward up by one. Requires entry 0 to be the tree root.
func (s *Stack) InsertRootTab(item *media.Item, ctrl Controller) {
	if len(s.entries) == 0 || s.entries[0].Type != TreeRoot {
		debug.Warn("browse: InsertRootTab without a root entry, ignoring")
		return
	}
	if len(s.entries) > 1 && s.entries[1].Type == TreeTab {
		debug.Warn("browse: InsertRootTab with a tab already present, ignoring")
		return
	}
	e := &Entry{Type: TreeTab, Item: item, Controller: ctrl}
	s.entries = append(s.entries, nil)
	copy(s.entries[2:], s.entries[1:])
	s.entries[1] = e
}

// PushSearchResults appends a search-results entry. Search results are a
// lineage root and carry no item.
func (s *Stack) PushSearchResults(ctrl Controller) {
	s.entries = append(s.entries, &Entry{Type: SearchResults, Controller: ctrl})
}

// Push appends an ordinary descent entry. The caller computes typ via the
// EntryType.Next transition table (or classifies as Link). Root and tab
// types must go through their dedicated operations.
func (s *Stack) Push(typ EntryType, item *media.Item, ctrl Controller) {
	switch typ {
	case TreeRoot:
		debug.Warn("browse: Push(TreeRoot) rejected, use PushRoot")
		return
	case TreeTab:
		debug.Warn("browse: Push(TreeTab) rejected, use InsertRootTab")
		return
	case SearchResults:
		s.PushSearchResults(ctrl)
		return
	}
	if item == nil {
		debug.Warn("browse: Push(%s) without an item, ignoring", typ)
		return
	}
	s.entries = append(s.entries, &Entry{Type: typ, Item: item, Controller: ctrl})
}

// Peek returns the top entry without removing it, or nil when empty.
func (s *Stack) Peek() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Pop removes and returns the top entry, or nil when empty. Popping an
// empty stack is a caller error; it is reported and ignored.
func (s *Stack) Pop() *Entry {
	if len(s.entries) == 0 {
		debug.Warn("browse: Pop on empty stack")
		return nil
	}
	e := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return e
}

// CurrentController returns the top entry's controller, or nil.
func (s *Stack) CurrentController() Controller {
	if e := s.Peek(); e != nil {
		return e.Controller
	}
	return nil
}

// CurrentEntryType returns the top entry's type. ok is false when empty.
func (s *Stack) CurrentEntryType() (EntryType, bool) {
	if e := s.Peek(); e != nil {
		return e.Type, true
	}
	return 0, false
}

// CurrentItem returns the top entry's item, or nil.
func (s *Stack) CurrentItem() *media.Item {
	if e := s.Peek(); e != nil {
		return e.Item
	}
	return nil
}

// IsShowingSearchResults reports whether the top entry is a search listing.
func (s *Stack) IsShowingSearchResults() bool {
	if e := s.Peek(); e != nil {
		return e.Type == SearchResults
	}
	return false
}

// RootID returns the root item's ID. ok is false when the stack is empty
// or entry 0 is not a tree root.
func (s *Stack) RootID() (string, bool) {
	if len(s.entries) == 0 || s.entries[0].Type != TreeRoot {
		return "", false
	}
	return s.entries[0].ItemID(), true
}

// RemoveAllExceptRoot removes and returns entries [1, end) in order,
// leaving only the root. On a root-only or empty stack it returns nil.
func (s *Stack) RemoveAllExceptRoot() []*Entry {
	if len(s.entries) <= 1 {
		return nil
	}
	removed := make([]*Entry, len(s.entries)-1)
	copy(removed, s.entries[1:])
	for i := 1; i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = s.entries[:1]
	return removed
}

// RemoveTreeExceptRoot removes and returns every tab and tree-descendant
// entry, preserving the relative order of everything kept. Search and link
// entries interleaved with tree entries survive in place.
func (s *Stack) RemoveTreeExceptRoot() []*Entry {
	return s.removeMatching(func(e *Entry) bool { return e.Type.isTree() })
}

// RemoveSearchEntries removes and returns every search-lineage entry,
// preserving the relative order of everything kept.
func (s *Stack) RemoveSearchEntries() []*Entry {
	return s.removeMatching(func(e *Entry) bool { return e.Type.isSearch() })
}

// removeMatching filters the stack in place, returning removed entries in
// their original order.
func (s *Stack) removeMatching(match func(*Entry) bool) []*Entry {
	var removed []*Entry
	kept := s.entries[:0]
	for _, e := range s.entries {
		if match(e) {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	return removed
}

// RemoveObsoleteEntries reconciles the stack against a content-tree update.
// ctrl is the controller whose children changed; removedIDs are the item
// IDs that disappeared from its listing.
//
// If the entry owned by ctrl has a descendant in the stack and that
// immediate child's item is among removedIDs, the child is stale: it and
// the contiguous run of entries of the same descendant lineage below it
// are removed and returned for teardown. Sibling lineages deeper in the
// stack (a search or link branch opened from the same parent) survive.
//
// Only the immediate child is checked against removedIDs; a removal of a
// later sibling in the run does not trigger pruning.
func (s *Stack) RemoveObsoleteEntries(ctrl Controller, removedIDs map[string]bool) []*Entry {
	if ctrl == nil || len(removedIDs) == 0 {
		return nil
	}
	idx := -1
	for i, e := range s.entries {
		if e.Controller == ctrl {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(s.entries)-1 {
		// Controller not on the stack, or nothing below it to prune.
		return nil
	}
	firstChild := s.entries[idx+1]
	if !removedIDs[firstChild.ItemID()] {
		return nil
	}
	descendantType := s.entries[idx].Type.Next()
	end := idx + 2
	for end < len(s.entries) && s.entries[end].Type == descendantType {
		end++
	}
	removed := make([]*Entry, end-(idx+1))
	copy(removed, s.entries[idx+1:end])
	oldLen := len(s.entries)
	s.entries = append(s.entries[:idx+1], s.entries[end:]...)
	clear(s.entries[len(s.entries):oldLen])
	return removed
}

// DestroyAll tears down every remaining entry and empties the stack.
// Called when the owning source session ends.
func (s *Stack) DestroyAll() {
	for _, e := range s.entries {
		e.Destroy()
	}
	s.entries = s.entries[:0]
}

// String renders the stack as slash-joined Type:title tokens, the same
// shape used by the test fixtures. Root and search-results entries render
// as bare type tokens.
func (s *Stack) String() string {
	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(e.Type.String())
		if e.Item != nil {
			b.WriteByte(':')
			b.WriteString(e.Item.Title)
		}
		b.WriteByte('/')
	}
	return b.String()
}
