// Package playback models the play queue and now-playing state. It is a
// pure model: mediadeck renders it but delegates actual audio to whatever
// player the user points at the item URIs.
package playback

import "github.com/vanderheijden86/mediadeck/pkg/media"

// Queue is an ordered list of playable items with a current position.
// Not safe for concurrent use; mutated from the UI event loop only.
type Queue struct {
	items   []media.Item
	current int // index into items, -1 when nothing is playing
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{current: -1}
}

// Items returns the queued items in order.
func (q *Queue) Items() []media.Item { return q.items }

// Len returns the queue length.
func (q *Queue) Len() int { return len(q.items) }

// CurrentIndex returns the playing position, or -1.
func (q *Queue) CurrentIndex() int { return q.current }

// NowPlaying returns the current item. ok is false when idle.
func (q *Queue) NowPlaying() (media.Item, bool) {
	if q.current < 0 || q.current >= len(q.items) {
		return media.Item{}, false
	}
	return q.items[q.current], true
}

// Enqueue appends a playable item without changing the playing position.
// Non-playable items are ignored.
func (q *Queue) Enqueue(item media.Item) {
	if !item.Playable {
		return
	}
	q.items = append(q.items, item)
	if q.current < 0 {
		q.current = 0
	}
}

// PlayNow inserts the item after the current position and jumps to it.
func (q *Queue) PlayNow(item media.Item) {
	if !item.Playable {
		return
	}
	at := q.current + 1
	q.items = append(q.items, media.Item{})
	copy(q.items[at+1:], q.items[at:])
	q.items[at] = item
	q.current = at
}

// Next advances to the following item. Returns false at the end of the
// queue (position unchanged).
func (q *Queue) Next() bool {
	if q.current+1 >= len(q.items) {
		return false
	}
	q.current++
	return true
}

// Prev steps back one item. Returns false at the head of the queue.
func (q *Queue) Prev() bool {
	if q.current <= 0 {
		return false
	}
	q.current--
	return true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.items = nil
	q.current = -1
}
