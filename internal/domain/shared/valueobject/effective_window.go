package valueobject

import (
	"fmt"
	"time"
)

// EffectiveWindow is a half-open [From, To) validity interval.
// A nil bound is unbounded on that side.
type EffectiveWindow struct {
	From *time.Time
	To   *time.Time
}

// NewEffectiveWindow creates a window, validating that From precedes To
// when both bounds are present.
func NewEffectiveWindow(from, to *time.Time) (EffectiveWindow, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return EffectiveWindow{}, fmt.Errorf("effective window start %s must precede end %s", from, to)
	}
	return EffectiveWindow{From: from, To: to}, nil
}

// UnboundedWindow returns a window that is always effective.
func UnboundedWindow() EffectiveWindow {
	return EffectiveWindow{}
}

// Contains reports whether t falls inside the window.
// The lower bound is inclusive, the upper bound exclusive.
func (w EffectiveWindow) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && !t.Before(*w.To) {
		return false
	}
	return true
}

// IsBounded reports whether the window has at least one bound.
func (w EffectiveWindow) IsBounded() bool {
	return w.From != nil || w.To != nil
}
