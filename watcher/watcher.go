// Package watcher provides two-slot snapshot holders for observed memory
// values. A Watcher never reads memory itself; it is fed exactly once per
// tick, and all predicates are pure functions of the (previous, current)
// pair, so a transition fires on exactly one tick.
package watcher

// Watcher holds the previous and current observation of one memory value.
// A missing slot means the value was unread this session or the read failed
// that tick.
type Watcher[T comparable] struct {
	old, current     T
	oldOK, currentOK bool
}

// Update advances previous <- current, current <- (v, ok). Call exactly once
// per tick; ok is false when the read failed.
func (w *Watcher[T]) Update(v T, ok bool) {
	w.old, w.oldOK = w.current, w.currentOK
	if ok {
		w.current = v
	} else {
		var zero T
		w.current = zero
	}
	w.currentOK = ok
}

// UpdateInfallible records a value that is always considered present.
func (w *Watcher[T]) UpdateInfallible(v T) {
	w.Update(v, true)
}

// Reset clears both slots, as after an explicit run reset or a fresh attach.
func (w *Watcher[T]) Reset() {
	var zero T
	w.old, w.current = zero, zero
	w.oldOK, w.currentOK = false, false
}

// Current returns the current observation.
func (w *Watcher[T]) Current() (T, bool) {
	return w.current, w.currentOK
}

// Pair returns the previous and current observations. ok is true only when
// both slots hold a value.
func (w *Watcher[T]) Pair() (old, current T, ok bool) {
	return w.old, w.current, w.oldOK && w.currentOK
}

// Changed reports whether both slots are present and unequal.
func (w *Watcher[T]) Changed() bool {
	return w.oldOK && w.currentOK && w.old != w.current
}

// ChangedTo reports an edge onto v: current == v and previous != v.
func (w *Watcher[T]) ChangedTo(v T) bool {
	return w.oldOK && w.currentOK && w.current == v && w.old != v
}

// ChangedFrom reports an edge off v: previous == v and current != v.
func (w *Watcher[T]) ChangedFrom(v T) bool {
	return w.oldOK && w.currentOK && w.old == v && w.current != v
}

// IncreasedTo is ChangedTo under a name that reads naturally for counters.
// It is edge-triggered: a counter that jumps past v without landing on it
// never fires.
func (w *Watcher[T]) IncreasedTo(v T) bool {
	return w.ChangedTo(v)
}

// Check applies a custom predicate to the pair. It returns false unless both
// slots are present.
func (w *Watcher[T]) Check(fn func(old, current T) bool) bool {
	return w.oldOK && w.currentOK && fn(w.old, w.current)
}
