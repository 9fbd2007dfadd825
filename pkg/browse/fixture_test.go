package browse

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// fakeController is a Controller test double that records lifecycle calls.
type fakeController struct {
	name      string
	shown     bool
	hidden    int
	destroyed int
	children  map[string]bool
}

func newFakeController(name string) *fakeController {
	return &fakeController{name: name, children: map[string]bool{}}
}

func (c *fakeController) Show()    { c.shown = true }
func (c *fakeController) Hide()    { c.shown = false; c.hidden++ }
func (c *fakeController) Destroy() { c.destroyed++ }
func (c *fakeController) HasChild(item media.Item) bool {
	return c.children[item.ID]
}

// parseStack builds a stack from slash-joined Type:title tokens, the
// encoding used throughout these tests: TR/TT:tab/TB:n1/SR/SB:s1/.
// Each entry gets its own fake controller so obsolete-entry pruning can
// locate entries by controller identity.
func parseStack(t *testing.T, fixture string) *Stack {
	t.Helper()
	s := NewStack()
	for _, tok := range strings.Split(strings.TrimSuffix(fixture, "/"), "/") {
		if tok == "" {
			continue
		}
		typ, title, _ := strings.Cut(tok, ":")
		item := &media.Item{ID: title, Title: title, Browsable: true}
		ctrl := newFakeController(tok)
		switch typ {
		case "TR":
			if title == "" {
				item = nil
			}
			s.PushRoot(item, ctrl)
		case "TT":
			s.InsertRootTab(item, ctrl)
		case "SR":
			s.PushSearchResults(ctrl)
		case "TB":
			s.Push(TreeBrowse, item, ctrl)
		case "SB":
			s.Push(SearchBrowse, item, ctrl)
		case "LN":
			s.Push(Link, item, ctrl)
		case "LB":
			s.Push(LinkBrowse, item, ctrl)
		default:
			t.Fatalf("unknown fixture token %q", tok)
		}
	}
	return s
}

// wantStack asserts the stack serializes to the expected fixture string.
func wantStack(t *testing.T, s *Stack, want string) {
	t.Helper()
	if got := s.String(); got != want {
		t.Fatalf("stack mismatch\n got %s\nwant %s", got, want)
	}
}

// titles extracts the Type:title token of each removed entry, for
// asserting the contents and order of removal results.
func titles(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		tok := e.Type.String()
		if e.Item != nil {
			tok += ":" + e.Item.Title
		}
		out = append(out, tok)
	}
	return out
}
