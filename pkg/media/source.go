package media

import "context"

// LoadState describes the state of a children listing delivery.
type LoadState int

const (
	// StateLoading means the listing is being fetched; Items is empty.
	StateLoading LoadState = iota
	// StateLoaded means Items is the current complete listing.
	StateLoaded
	// StateFailed means the fetch failed; Err describes why.
	StateFailed
)

// String returns a short label for the load state.
func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChildrenUpdate is one delivery on a node subscription.
type ChildrenUpdate struct {
	NodeID string
	State  LoadState
	Items  []Item
	Err    error
}

// Subscription is a push-style observable stream of children listings for
// one node. Deliveries are latest-wins: a newer listing for the node
// replaces an undelivered older one rather than queueing behind it.
// Updates must be consumed from a single goroutine.
type Subscription struct {
	nodeID string
	ch     chan ChildrenUpdate
	done   chan struct{}
	cancel func()
}

// NewSubscription builds a subscription with latest-wins delivery.
// cancel, if non-nil, is invoked once on Close.
func NewSubscription(nodeID string, cancel func()) *Subscription {
	return &Subscription{
		nodeID: nodeID,
		ch:     make(chan ChildrenUpdate, 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// NodeID returns the node this subscription observes.
func (s *Subscription) NodeID() string { return s.nodeID }

// Updates returns the delivery channel.
func (s *Subscription) Updates() <-chan ChildrenUpdate { return s.ch }

// Deliver hands an update to the subscriber, displacing any undelivered
// previous update for this node.
func (s *Subscription) Deliver(u ChildrenUpdate) {
	for {
		select {
		case s.ch <- u:
			return
		default:
			// Drain the stale update and retry.
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Done is closed when the subscription is closed. Consumers waiting on
// Updates select on Done to stop cleanly.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Close cancels the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Source is the data-source contract consumed by the navigation core.
// Implementations deliver children asynchronously; the consumer drains
// subscriptions from its own event loop.
type Source interface {
	// Root returns the root node of the content tree.
	Root(ctx context.Context) (Item, error)
	// Subscribe starts observing the children of a node. The first delivery
	// is either the current listing or a loading state.
	Subscribe(nodeID string) *Subscription
	// Item looks up a single node by ID.
	Item(id string) (Item, bool)
	// Search returns a flat listing of items matching the query.
	Search(query string) ([]Item, error)
}
