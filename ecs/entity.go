package ecs

// EntityId identifies an entity for the lifetime of a Storage.
// Ids are allocated in increasing order starting at 1 and are never reused,
// so comparing two ids also compares their creation order.
type EntityId uint64

// InvalidEntity is never returned by a Storage.
const InvalidEntity EntityId = 0

// IsValid reports whether the id could name an entity.
func (e EntityId) IsValid() bool {
	return e != InvalidEntity
}

// entityLocation records where an entity's components live.
// archetype is nil for an entity that has no components attached.
type entityLocation struct {
	archetype *Archetype
	row       uint32
}
