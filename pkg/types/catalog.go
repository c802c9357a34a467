package types

import "errors"

// Catalog defines a queryable index over the slots of a model directory.
// Descriptor files stay the source of truth; the catalog is rebuilt on
// Attach and refreshed per slot.
type Catalog interface {
	// Attach loads every slot of the model directory described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases catalog resources. Idempotent: multiple calls succeed.
	// After Detach, queries return ErrCatalogDetached.
	Detach() error

	// Fetch returns the slots matching filter in ascending slot order.
	// A zero Filter returns every slot, empty ones included.
	Fetch(filter Filter) ([]Slot, error)

	// Refresh re-reads one slot's descriptor into the catalog.
	Refresh(index int) error
}

// Filter narrows a catalog query. Zero fields do not constrain the result.
type Filter struct {
	Type         VoiceChangerType // exact discriminator match
	NameContains string           // case-insensitive substring of Name
	OccupiedOnly bool             // skip empty slots
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)
