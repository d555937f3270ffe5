package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	// archetypeOrder lists archetypes in creation order so that iteration
	// does not depend on map ordering.
	archetypeOrder []*Archetype
	registry       *ComponentRegistry
	locations      *intmap.Map[EntityId, entityLocation]
	lastId         EntityId
	singletons     map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry.
// A nil registry is replaced by an empty one.
func NewStorage(registry *ComponentRegistry) *Storage {
	if registry == nil {
		registry = NewComponentRegistry()
	}
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		locations:  intmap.New[EntityId, entityLocation](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntity allocates a new entity without components.
func (s *Storage) CreateEntity() EntityId {
	s.lastId++
	id := s.lastId
	s.locations.Put(id, entityLocation{})
	return id
}

// Alive reports whether id was created by this storage and not yet deleted.
func (s *Storage) Alive(id EntityId) bool {
	return s.locations.Has(id)
}

// Len returns the number of live entities, including entities without components.
func (s *Storage) Len() int {
	return s.locations.Len()
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	_, types := normalizeComponents(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Archetypes iterates over all archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return slices.Values(s.archetypeOrder)
}

// Spawn creates a new entity with the provided components.
// Passing two components of the same type keeps the last one.
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.CreateEntity()
	if len(components) == 0 {
		return id
	}

	components, types := normalizeComponents(components)
	s.relocate(id, entityLocation{}, types, components)
	return id
}

// Delete removes all data related to the entity ID and invalidates the ID.
func (s *Storage) Delete(id EntityId) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}

	if loc.archetype != nil {
		loc.archetype.Delete(loc.row)
	}
	s.locations.Del(id)
}

// AddComponent attaches component to the entity. A component of the same
// type that is already attached is overwritten in place; otherwise the
// entity moves to the archetype that includes the new type. Attaching to
// an entity that is not alive does nothing.
func (s *Storage) AddComponent(id EntityId, component any) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}

	compType := componentType(component)
	validateComponentType(compType)

	if loc.archetype != nil && loc.archetype.SetComponent(loc.row, component) {
		return
	}

	var oldTypes []reflect.Type
	if loc.archetype != nil {
		oldTypes = loc.archetype.types
	}

	newTypes := make([]reflect.Type, 0, len(oldTypes)+1)
	newTypes = append(newTypes, oldTypes...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, loc.archetype.GetComponent(loc.row, typ))
		}
	}

	s.relocate(id, loc, newTypes, components)
}

// RemoveComponent detaches the component of the given type. The entity stays
// alive even when no components remain.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil || !loc.archetype.HasComponent(compType) {
		return
	}

	newTypes := make([]reflect.Type, 0, len(loc.archetype.types)-1)
	components := make([]any, 0, len(loc.archetype.types)-1)
	for _, typ := range loc.archetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
			components = append(components, loc.archetype.GetComponent(loc.row, typ))
		}
	}

	s.relocate(id, loc, newTypes, components)
}

// relocate stores components for id in the archetype matching types and
// frees the entity's previous row. types must be sorted.
func (s *Storage) relocate(id EntityId, from entityLocation, types []reflect.Type, components []any) {
	to := entityLocation{}
	if len(types) > 0 {
		archetype := s.archetypeFor(types)
		// Spawn copies the component values, so the old row is still
		// readable until it is deleted below.
		to = entityLocation{archetype: archetype, row: archetype.Spawn(id, components)}
	}

	if from.archetype != nil {
		from.archetype.Delete(from.row)
	}
	s.locations.Put(id, to)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if exists {
		if !slices.Equal(archetype.types, types) {
			panic("archetype id collision between component sets")
		}
		return archetype
	}

	archetype = NewArchetype(archetypeId, types, s.registry)
	s.archetypes[archetypeId] = archetype
	s.archetypeOrder = append(s.archetypeOrder, archetype)
	return archetype
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return nil
	}

	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// ComponentTypes returns the component types attached to an entity.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return nil
	}
	return slices.Clone(loc.archetype.types)
}

// Compact removes empty rows left behind by deletions and migrations.
// Entity ids are unaffected.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypeOrder {
		indexMap := archetype.compact()
		for _, newRow := range indexMap {
			id := archetype.entities[newRow]
			s.locations.Put(id, entityLocation{archetype: archetype, row: uint32(newRow)})
		}
	}
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("component cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// Components can be structs or primitives (int, string, etc.)
// But not pointers, maps, channels, or functions (those aren't value types)
func validateComponentType(compType reflect.Type) {
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}
}

// normalizeComponents drops earlier duplicates of a type and returns the
// components and their types sorted by type name.
func normalizeComponents(components []any) ([]any, []reflect.Type) {
	byType := make(map[reflect.Type]any, len(components))
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		validateComponentType(compType)
		if _, seen := byType[compType]; !seen {
			types = append(types, compType)
		}
		byType[compType] = comp
	}
	sort.Sort(byTypeName(types))

	sorted := make([]any, len(types))
	for i, typ := range types {
		sorted[i] = byType[typ]
	}
	return sorted, types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in all 4 bytes if on 64-bit system
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(uintptr(ptr)) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// Attach attaches value to the entity, registering T with the storage's
// registry first if needed.
func Attach[T any](storage *Storage, entityId EntityId, value T) {
	RegisterComponent[T](storage.registry)
	storage.AddComponent(entityId, value)
}

// Detach removes the entity's component of type T, if any.
func Detach[T any](storage *Storage, entityId EntityId) {
	storage.RemoveComponent(entityId, reflect.TypeFor[T]())
}
