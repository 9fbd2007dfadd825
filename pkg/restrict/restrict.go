// Package restrict implements driving-distraction content limiting.
//
// While the vehicle is moving, listings are truncated to a configured item
// count and items beyond the cap cannot be activated. The limiter itself
// is policy-free about what "driving" means; the host flips the mode.
package restrict

import "github.com/vanderheijden86/mediadeck/pkg/media"

// Mode is the current restriction mode.
type Mode int

const (
	// Parked applies no limiting.
	Parked Mode = iota
	// Driving caps listing length.
	Driving
)

// String returns a short label for the mode.
func (m Mode) String() string {
	if m == Driving {
		return "driving"
	}
	return "parked"
}

// Limiter truncates listings while driving.
type Limiter struct {
	mode     Mode
	maxItems int
}

// NewLimiter builds a limiter with the given listing cap. A cap below one
// falls back to 1; an uncapped limiter makes no sense while driving.
func NewLimiter(maxItems int) *Limiter {
	if maxItems < 1 {
		maxItems = 1
	}
	return &Limiter{maxItems: maxItems}
}

// Mode returns the current mode.
func (l *Limiter) Mode() Mode { return l.mode }

// SetMode switches restriction mode.
func (l *Limiter) SetMode(m Mode) { l.mode = m }

// Toggle flips between parked and driving, returning the new mode.
func (l *Limiter) Toggle() Mode {
	if l.mode == Parked {
		l.mode = Driving
	} else {
		l.mode = Parked
	}
	return l.mode
}

// MaxItems returns the listing cap applied while driving.
func (l *Limiter) MaxItems() int { return l.maxItems }

// Apply returns the listing as displayable, truncated to the cap when
// driving. limited reports whether anything was cut.
func (l *Limiter) Apply(items []media.Item) (out []media.Item, limited bool) {
	if l.mode != Driving || len(items) <= l.maxItems {
		return items, false
	}
	return items[:l.maxItems], true
}

// Allows reports whether the item at index idx of a listing may be
// activated under the current mode.
func (l *Limiter) Allows(idx int) bool {
	return l.mode != Driving || idx < l.maxItems
}
