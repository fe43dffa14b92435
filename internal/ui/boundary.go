package ui

// boundaryWatcher detects when the last loaded course becomes the visible
// selection, the terminal analogue of an intersection observer on the final
// list element.
//
// It fires at most once per sentinel identity: once a signal is emitted for
// a given last item, no further signals occur until a landed page changes
// which item is last and Rebind resets the watcher. Disconnecting detaches
// it entirely so a superseded list can't trigger fetches.
type boundaryWatcher struct {
	sentinel int
	bound    bool
	fired    bool
}

// Rebind points the watcher at a new sentinel (the current last item's id).
// Rebinding to the same sentinel is a no-op so re-renders don't re-arm it.
func (w *boundaryWatcher) Rebind(sentinelID int) {
	if w.bound && w.sentinel == sentinelID {
		return
	}
	w.sentinel = sentinelID
	w.bound = true
	w.fired = false
}

// Disconnect detaches the watcher from its sentinel.
func (w *boundaryWatcher) Disconnect() {
	w.bound = false
	w.fired = false
}

// Observe reports whether a boundary signal fires for the given visible
// item. A signal is emitted only when the sentinel is visible, the watcher
// has not fired for it yet, more pages exist, and no fetch is in flight.
func (w *boundaryWatcher) Observe(visibleID int, hasMore, fetching bool) bool {
	if !w.bound || w.fired {
		return false
	}
	if visibleID != w.sentinel {
		return false
	}
	if !hasMore || fetching {
		return false
	}
	w.fired = true
	return true
}
