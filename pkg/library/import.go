package library

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// importConcurrency bounds parallel leaf inserts during import.
const importConcurrency = 4

// ImportNode is one node of the JSON catalog interchange format:
//
//	{"id": "albums", "title": "Albums", "children": [
//	  {"id": "t1", "title": "Track 1", "playable": true, "uri": "file:///..."}
//	]}
//
// A node with children (or "browsable": true) becomes a container; a node
// with a URI defaults to playable.
type ImportNode struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle,omitempty"`
	Browsable *bool        `json:"browsable,omitempty"`
	Playable  *bool        `json:"playable,omitempty"`
	URI       string       `json:"uri,omitempty"`
	Children  []ImportNode `json:"children,omitempty"`
}

func (n ImportNode) item() media.Item {
	it := media.Item{
		ID:       n.ID,
		Title:    n.Title,
		Subtitle: n.Subtitle,
		URI:      n.URI,
	}
	it.Browsable = len(n.Children) > 0
	if n.Browsable != nil {
		it.Browsable = *n.Browsable
	}
	it.Playable = n.URI != ""
	if n.Playable != nil {
		it.Playable = *n.Playable
	}
	return it
}

// Import seeds the catalog at dbPath from the JSON tree at jsonPath and
// returns the number of nodes written.
func Import(jsonPath, dbPath string) (int, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	var root ImportNode
	if err := json.Unmarshal(data, &root); err != nil {
		return 0, fmt.Errorf("parsing import file: %w", err)
	}
	if err := validateImport(&root, map[string]bool{}); err != nil {
		return 0, err
	}

	cat, err := CreateCatalog(dbPath)
	if err != nil {
		return 0, err
	}
	defer cat.Close()

	start := time.Now()
	count, err := importTree(cat, root)
	if err != nil {
		return count, err
	}
	debug.LogTiming("library import", time.Since(start))
	return count, nil
}

// validateImport checks IDs are present and unique across the tree. The
// root may omit its ID; it defaults to "root".
func validateImport(n *ImportNode, seen map[string]bool) error {
	if n.ID == "" {
		if len(seen) != 0 {
			return fmt.Errorf("node %q has no id", n.Title)
		}
		n.ID = "root"
	}
	if seen[n.ID] {
		return fmt.Errorf("duplicate node id %q", n.ID)
	}
	seen[n.ID] = true
	for i := range n.Children {
		if err := validateImport(&n.Children[i], seen); err != nil {
			return err
		}
	}
	return nil
}

// importTree writes containers depth-first on the calling goroutine and
// fans leaf inserts out across a bounded errgroup.
func importTree(cat *Catalog, root ImportNode) (int, error) {
	var g errgroup.Group
	g.SetLimit(importConcurrency)

	count := 1
	if err := cat.Insert("", root.item(), 0); err != nil {
		return 0, err
	}
	var walk func(parent ImportNode) error
	walk = func(parent ImportNode) error {
		for i, child := range parent.Children {
			count++
			if len(child.Children) > 0 {
				if err := cat.Insert(parent.ID, child.item(), i); err != nil {
					return err
				}
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			parentID, it, ord := parent.ID, child.item(), i
			g.Go(func() error {
				return cat.Insert(parentID, it, ord)
			})
		}
		return nil
	}
	if err := walk(root); err != nil {
		g.Wait()
		return count, err
	}
	if err := g.Wait(); err != nil {
		return count, err
	}
	return count, nil
}
