package field

import "sync/atomic"

// Latest holds the most recent completed field for readers on any goroutine.
// Fields are swapped in whole, so a reader never observes a partial grid.
type Latest struct {
	current atomic.Pointer[Field]
}

// Store publishes f. Older fields are replaced only by newer ones, so a slow
// pass finishing late cannot roll the display back.
func (l *Latest) Store(f *Field) bool {
	for {
		old := l.current.Load()
		if old != nil && old.GeneratedAt.After(f.GeneratedAt) {
			return false
		}
		if l.current.CompareAndSwap(old, f) {
			return true
		}
	}
}

// Load returns the current field, or nil before the first Store.
func (l *Latest) Load() *Field {
	return l.current.Load()
}
