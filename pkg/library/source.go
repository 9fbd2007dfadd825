package library

import (
	"context"
	"sync"

	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/media"
)

// Removal describes children that disappeared from a node's listing after
// a catalog refresh. The UI feeds these into the navigator's
// obsolete-entry pruning.
type Removal struct {
	NodeID     string
	RemovedIDs map[string]bool
}

// Library implements media.Source over a Catalog, adding per-node
// subscriptions with latest-wins delivery and refresh-driven removal
// deltas.
type Library struct {
	catalog *Catalog

	mu   sync.Mutex
	subs map[string][]*media.Subscription
	last map[string][]media.Item

	removals chan Removal
}

// Open opens the catalog at path for browsing.
func Open(path string) (*Library, error) {
	cat, err := OpenCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewLibrary(cat), nil
}

// NewLibrary wraps an already-open catalog.
func NewLibrary(cat *Catalog) *Library {
	return &Library{
		catalog:  cat,
		subs:     make(map[string][]*media.Subscription),
		last:     make(map[string][]media.Item),
		removals: make(chan Removal, 16),
	}
}

// Close closes the underlying catalog.
func (l *Library) Close() error { return l.catalog.Close() }

// Removals exposes the removal-delta stream produced by Refresh.
func (l *Library) Removals() <-chan Removal { return l.removals }

// Root implements media.Source.
func (l *Library) Root(ctx context.Context) (media.Item, error) {
	return l.catalog.Root(ctx)
}

// Item implements media.Source.
func (l *Library) Item(id string) (media.Item, bool) {
	return l.catalog.Item(id)
}

// Search implements media.Source.
func (l *Library) Search(query string) ([]media.Item, error) {
	return l.catalog.Search(query)
}

// Subscribe implements media.Source. The subscription immediately
// receives a loading state, then the current listing (or a failure) from
// a background fetch. Closing the subscription detaches it.
func (l *Library) Subscribe(nodeID string) *media.Subscription {
	var sub *media.Subscription
	sub = media.NewSubscription(nodeID, func() {
		l.detach(nodeID, sub)
	})
	l.mu.Lock()
	l.subs[nodeID] = append(l.subs[nodeID], sub)
	l.mu.Unlock()

	sub.Deliver(media.ChildrenUpdate{NodeID: nodeID, State: media.StateLoading})
	go l.fetch(nodeID, sub)
	return sub
}

// fetch loads a node's children and delivers the result to one subscriber.
func (l *Library) fetch(nodeID string, sub *media.Subscription) {
	items, err := l.catalog.Children(nodeID)
	if err != nil {
		debug.Log("library: loading children of %s: %v", nodeID, err)
		sub.Deliver(media.ChildrenUpdate{NodeID: nodeID, State: media.StateFailed, Err: err})
		return
	}
	l.mu.Lock()
	l.last[nodeID] = items
	l.mu.Unlock()
	sub.Deliver(media.ChildrenUpdate{NodeID: nodeID, State: media.StateLoaded, Items: items})
}

// detach removes a closed subscription from the node's fan-out list.
func (l *Library) detach(nodeID string, sub *media.Subscription) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := l.subs[nodeID]
	for i, s := range list {
		if s == sub {
			list[i] = list[len(list)-1]
			l.subs[nodeID] = list[:len(list)-1]
			break
		}
	}
	if len(l.subs[nodeID]) == 0 {
		delete(l.subs, nodeID)
		delete(l.last, nodeID)
	}
}

// Refresh re-reads every subscribed node and re-delivers listings that
// changed, emitting removal deltas for children that vanished. Called
// after the catalog file changes on disk.
func (l *Library) Refresh() {
	l.mu.Lock()
	nodes := make([]string, 0, len(l.subs))
	for id := range l.subs {
		nodes = append(nodes, id)
	}
	l.mu.Unlock()

	for _, nodeID := range nodes {
		items, err := l.catalog.Children(nodeID)
		if err != nil {
			debug.Log("library: refresh of %s failed: %v", nodeID, err)
			continue
		}
		l.mu.Lock()
		prev := l.last[nodeID]
		if media.SameItemList(prev, items) {
			l.mu.Unlock()
			continue
		}
		l.last[nodeID] = items
		subs := append([]*media.Subscription(nil), l.subs[nodeID]...)
		l.mu.Unlock()

		for _, sub := range subs {
			sub.Deliver(media.ChildrenUpdate{NodeID: nodeID, State: media.StateLoaded, Items: items})
		}
		if removed := removedIDs(prev, items); len(removed) > 0 {
			select {
			case l.removals <- Removal{NodeID: nodeID, RemovedIDs: removed}:
			default:
				debug.Warn("library: removal delta for %s dropped, channel full", nodeID)
			}
		}
	}
}

// removedIDs returns the IDs present in prev but absent from next.
func removedIDs(prev, next []media.Item) map[string]bool {
	current := make(map[string]bool, len(next))
	for _, it := range next {
		current[it.ID] = true
	}
	var removed map[string]bool
	for _, it := range prev {
		if !current[it.ID] {
			if removed == nil {
				removed = make(map[string]bool)
			}
			removed[it.ID] = true
		}
	}
	return removed
}
