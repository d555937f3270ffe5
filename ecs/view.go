package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	// componentType is nil for the EntityId field.
	componentType reflect.Type
	optional      bool
	offset        uintptr
}

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
// A field of type EntityId receives the id of the matched entity.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

type viewMatch[T any] struct {
	id    EntityId
	value T
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			fields = append(fields, viewField{offset: field.Offset})
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		// Parse struct tag to check if component is optional
		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		fields = append(fields, viewField{
			componentType: fieldType.Elem(),
			optional:      isOptional,
			offset:        field.Offset,
		})
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.locations.Get(id)
	if !ok {
		return false
	}
	if loc.archetype == nil {
		// Only a view without required components matches an empty entity.
		for _, f := range v.fields {
			if f.componentType != nil && !f.optional {
				return false
			}
		}
	} else if !v.matchesArchetype(loc.archetype) {
		return false
	}

	// Use unsafe.Pointer to directly access the struct's memory
	// This avoids reflection overhead in the hot path
	structPtr := unsafe.Pointer(ptr)

	for _, f := range v.fields {
		fieldPtr := unsafe.Add(structPtr, f.offset)

		if f.componentType == nil {
			*(*EntityId)(fieldPtr) = id
			continue
		}

		var component any
		if loc.archetype != nil {
			component = loc.archetype.GetComponent(loc.row, f.componentType)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Component found, set the field to point to the component
		// We need to extract the pointer from the interface{}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// matchesArchetype checks if an archetype contains all the required component types for this view
// Optional components are not checked - they may or may not be present
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.componentType == nil || f.optional {
			continue
		}
		// Required component must be present
		if !archetype.HasComponent(f.componentType) {
			return false
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.fields))
	for i, f := range v.fields {
		storageIndices[i] = -1
		if f.componentType != nil {
			storageIndices[i] = archetype.storageIndex(f.componentType)
		}
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, row int, id EntityId, storageIndices []int) bool {
	for i, storageIdx := range storageIndices {
		f := v.fields[i]
		fieldPtr := unsafe.Add(resultPtr, f.offset)

		if f.componentType == nil {
			*(*EntityId)(fieldPtr) = id
			continue
		}

		if storageIdx == -1 {
			if f.optional {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.storages[storageIdx].Get(row)
		if component == nil {
			if f.optional {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// appendArchetype appends every entity of archetype to matches.
func (v *View[T]) appendArchetype(matches []viewMatch[T], archetype *Archetype) []viewMatch[T] {
	storageIndices := v.buildStorageIndices(archetype)

	for row, id := range archetype.rows() {
		var result T
		if !v.populateResult(unsafe.Pointer(&result), archetype, row, id, storageIndices) {
			continue
		}
		matches = append(matches, viewMatch[T]{id: id, value: result})
	}
	return matches
}

// collect gathers all matches from archetypes, ordered by entity id.
func (v *View[T]) collect(archetypes []*Archetype, matches []viewMatch[T]) []viewMatch[T] {
	for _, archetype := range archetypes {
		matches = v.appendArchetype(matches, archetype)
	}
	slices.SortFunc(matches, func(a, b viewMatch[T]) int {
		return cmp.Compare(a.id, b.id)
	})
	return matches
}

func (v *View[T]) matchingArchetypes() []*Archetype {
	archetypes := make([]*Archetype, 0)
	for _, archetype := range v.storage.archetypeOrder {
		if v.matchesArchetype(archetype) {
			archetypes = append(archetypes, archetype)
		}
	}
	return archetypes
}

// Iter returns an iterator over all entities that have all the required components for this view
// The iterator yields (EntityId, T) pairs in entity creation order
// Optional components are set to nil if not present
// Entities without any components are never yielded.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, match := range v.collect(v.matchingArchetypes(), nil) {
			if !yield(match.id, match.value) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
// This is useful when you only care about the component data, not which entity it belongs to
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Spawn creates a new entity with components extracted from the view struct
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.componentType == nil {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		component := reflect.NewAt(f.componentType, componentPtr).Elem().Interface()
		components = append(components, component)
	}

	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	return v.storage.Spawn(components...)
}
