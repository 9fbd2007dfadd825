package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mediadeck/pkg/library"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// RootLoadedMsg carries the catalog root once the source connects.
type RootLoadedMsg struct {
	Root media.Item
	Err  error
}

// ChildrenUpdateMsg delivers one subscription update for a controller.
type ChildrenUpdateMsg struct {
	Ctrl   *BrowseViewController
	Update media.ChildrenUpdate
}

// CatalogChangedMsg fires when the catalog file changed on disk.
type CatalogChangedMsg struct{}

// RefreshDoneMsg fires after the library re-read subscribed nodes.
type RefreshDoneMsg struct{}

// RemovalMsg carries a children-removal delta from a catalog refresh.
type RemovalMsg struct {
	Removal library.Removal
}

// SearchResultsMsg delivers the outcome of a search query.
type SearchResultsMsg struct {
	Query string
	Items []media.Item
	Err   error
}

// statusClearMsg clears a transient status message.
type statusClearMsg struct{ seq int }

// loadRootCmd fetches the catalog root.
func loadRootCmd(src media.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		root, err := src.Root(ctx)
		return RootLoadedMsg{Root: root, Err: err}
	}
}

// waitForChildrenCmd waits for the controller's next subscription
// delivery. It re-arms itself from the update loop after every message.
func waitForChildrenCmd(c *BrowseViewController) tea.Cmd {
	sub := c.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case u := <-sub.Updates():
			return ChildrenUpdateMsg{Ctrl: c, Update: u}
		case <-sub.Done():
			return nil
		}
	}
}

// watchCatalogCmd waits for the next file-change signal.
func watchCatalogCmd(w *library.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return CatalogChangedMsg{}
	}
}

// refreshCmd re-reads subscribed nodes after a catalog change.
func refreshCmd(lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		lib.Refresh()
		return RefreshDoneMsg{}
	}
}

// waitRemovalCmd waits for the next removal delta.
func waitRemovalCmd(lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		rm, ok := <-lib.Removals()
		if !ok {
			return nil
		}
		return RemovalMsg{Removal: rm}
	}
}

// searchCmd runs a search query against the source.
func searchCmd(src media.Source, query string) tea.Cmd {
	return func() tea.Msg {
		items, err := src.Search(query)
		return SearchResultsMsg{Query: query, Items: items, Err: err}
	}
}

// clearStatusCmd clears the status line after a short delay. seq guards
// against clearing a newer message.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
