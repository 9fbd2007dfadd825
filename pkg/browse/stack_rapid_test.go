package browse

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// TestStackStructuralInvariants drives the stack through random operation
// sequences and checks the structural invariants after every step:
// the tree root, if present, is at index 0 and nowhere else; the tab, if
// present, is exactly at index 1; no SearchResults entry carries an item.
func TestStackStructuralInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStack()
		seq := 0
		nextItem := func() *media.Item {
			seq++
			id := fmt.Sprintf("n%d", seq)
			return &media.Item{ID: id, Title: id, Browsable: true}
		}
		descTypes := []EntryType{TreeBrowse, SearchBrowse, Link, LinkBrowse}

		rt.Repeat(map[string]func(*rapid.T){
			"pushRoot": func(rt *rapid.T) {
				s.PushRoot(nextItem(), newFakeController("root"))
			},
			"insertTab": func(rt *rapid.T) {
				s.InsertRootTab(nextItem(), newFakeController("tab"))
			},
			"pushSearchResults": func(rt *rapid.T) {
				s.PushSearchResults(newFakeController("sr"))
			},
			"push": func(rt *rapid.T) {
				typ := rapid.SampledFrom(descTypes).Draw(rt, "type")
				s.Push(typ, nextItem(), newFakeController("d"))
			},
			"pop": func(rt *rapid.T) {
				if s.Size() > 0 {
					s.Pop()
				}
			},
			"removeAllExceptRoot": func(rt *rapid.T) {
				s.RemoveAllExceptRoot()
			},
			"removeTree": func(rt *rapid.T) {
				s.RemoveTreeExceptRoot()
			},
			"removeSearch": func(rt *rapid.T) {
				s.RemoveSearchEntries()
			},
			"removeObsolete": func(rt *rapid.T) {
				if s.Size() == 0 {
					return
				}
				i := rapid.IntRange(0, s.Size()-1).Draw(rt, "ctrlIndex")
				ids := map[string]bool{}
				if e := s.At(i + 1); e != nil {
					ids[e.ItemID()] = true
				}
				s.RemoveObsoleteEntries(s.At(i).Controller, ids)
			},
			"": func(rt *rapid.T) {
				for i := 0; i < s.Size(); i++ {
					e := s.At(i)
					if e.Type == TreeRoot && i != 0 {
						rt.Fatalf("TreeRoot at index %d: %s", i, s)
					}
					if e.Type == TreeTab && i != 1 {
						rt.Fatalf("TreeTab at index %d: %s", i, s)
					}
					if e.Type == SearchResults && e.Item != nil {
						rt.Fatalf("SearchResults entry carries an item: %s", s)
					}
					if e.Type != TreeRoot && e.Type != SearchResults && e.Item == nil {
						rt.Fatalf("%s entry without an item at index %d", e.Type, i)
					}
				}
			},
		})
	})
}

// TestStackFiltersPreserveOrder checks that the order-preserving removal
// operations keep non-matching entries in their original relative order
// and return matching entries in their original relative order.
func TestStackFiltersPreserveOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStack()
		s.PushRoot(nil, newFakeController("root"))
		n := rapid.IntRange(0, 12).Draw(rt, "depth")
		var order []*Entry
		for i := 0; i < n; i++ {
			item := &media.Item{ID: fmt.Sprintf("n%d", i), Title: fmt.Sprintf("n%d", i)}
			if rapid.Bool().Draw(rt, "searchRoot") {
				s.PushSearchResults(newFakeController("sr"))
			} else {
				typ := rapid.SampledFrom([]EntryType{TreeBrowse, SearchBrowse, Link, LinkBrowse}).Draw(rt, "type")
				s.Push(typ, item, newFakeController("d"))
			}
			order = append(order, s.Peek())
		}

		removeSearch := rapid.Bool().Draw(rt, "removeSearch")
		var removed []*Entry
		if removeSearch {
			removed = s.RemoveSearchEntries()
		} else {
			removed = s.RemoveTreeExceptRoot()
		}

		// Kept and removed sequences must each be subsequences of the
		// original order.
		pos := map[*Entry]int{}
		for i, e := range order {
			pos[e] = i
		}
		last := -1
		for i := 1; i < s.Size(); i++ {
			p := pos[s.At(i)]
			if p <= last {
				rt.Fatalf("kept entries reordered: %s", s)
			}
			last = p
		}
		last = -1
		for _, e := range removed {
			p := pos[e]
			if p <= last {
				rt.Fatalf("removed entries reordered")
			}
			last = p
		}
	})
}
