package collision

import (
	"github.com/arloliu/tsfile/errs"
)

// Tracker guards one hash-keyed routing table. Device paths and measurement
// ids are dispatched by their 64-bit IDs; the tracker verifies at
// registration time that no two distinct names share an ID, so lookups
// never route a sample to the wrong column.
type Tracker struct {
	names map[uint64]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// Track registers a name under its ID.
// It returns ErrDuplicateIdentifier when the same name is registered twice,
// and ErrHashCollision when a different name already owns the ID.
func (t *Tracker) Track(id uint64, name string) error {
	if existing, ok := t.names[id]; ok {
		if existing == name {
			return errs.ErrDuplicateIdentifier
		}

		return errs.ErrHashCollision
	}

	t.names[id] = name

	return nil
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}
