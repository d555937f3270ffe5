package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types.
// Every storage of an archetype is appended to and deleted from in lockstep,
// so one row index addresses all components of an entity.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []EntityId
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	// Initialize storage for each component type
	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn stores the components of entity and returns the row they occupy.
// components must hold exactly one value for each type of the archetype.
func (a *Archetype) Spawn(entity EntityId, components []any) uint32 {
	row := -1
	for idx, typ := range a.types {
		comp := findComponent(components, typ)
		if comp == nil {
			panic("missing component " + typ.String() + " for archetype")
		}

		pos := a.storages[idx].Append(comp)
		if row != -1 && pos != row {
			panic("archetype storages out of sync")
		}
		row = pos
	}

	for row >= len(a.entities) {
		a.entities = append(a.entities, InvalidEntity)
	}
	a.entities[row] = entity

	return uint32(row)
}

func findComponent(components []any, typ reflect.Type) any {
	for _, comp := range components {
		if componentType(comp) == typ {
			return comp
		}
	}
	return nil
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored
// at row, or nil when the archetype has no such type or the row is empty.
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}

	return a.storages[idx].Get(int(row))
}

// SetComponent overwrites the component stored at row with component.
// It reports false when the archetype does not hold the component's type.
func (a *Archetype) SetComponent(row uint32, component any) bool {
	idx := a.storageIndex(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(row), component)
}

// Delete empties a row. Rows of other entities are not affected.
func (a *Archetype) Delete(row uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	if int(row) < len(a.entities) {
		a.entities[row] = InvalidEntity
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// compact reorganizes all component storage to eliminate empty slots and
// returns the old-row to new-row mapping of the surviving entities.
func (a *Archetype) compact() map[int]int {
	if len(a.storages) == 0 {
		return nil
	}

	// Compact the first storage and use it as the canonical index mapping
	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	entities := make([]EntityId, len(indexMap))
	for oldRow, newRow := range indexMap {
		entities[newRow] = a.entities[oldRow]
	}
	a.entities = entities

	return indexMap
}

// rows iterates over occupied rows together with the entity stored there.
func (a *Archetype) rows() iter.Seq2[int, EntityId] {
	return func(yield func(int, EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for row := range a.storages[0].Iter() {
			if !yield(row, a.entities[row]) {
				return
			}
		}
	}
}

// Entities returns an iterator over the entities stored in this archetype,
// in row order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range a.rows() {
			if !yield(id) {
				return
			}
		}
	}
}
