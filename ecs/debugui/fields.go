package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var fieldsByType = &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}

// Fields returns the exported fields of struct type t. Other kinds have no
// fields.
func Fields(t reflect.Type) []FieldInfo {
	return fieldsByType.get(t)
}

func (c *fieldCache) get(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	c.mu.Lock()
	c.fields[t] = fields
	c.mu.Unlock()
	return fields
}

// setNumber stores value into an int, uint or float field. Values that do
// not fit the field are ignored.
func setNumber(field reflect.Value, value float64) bool {
	if !field.CanSet() {
		return false
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int64(value)
		if field.OverflowInt(v) {
			return false
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value < 0 || field.OverflowUint(uint64(value)) {
			return false
		}
		field.SetUint(uint64(value))
	case reflect.Float32, reflect.Float64:
		if field.OverflowFloat(value) {
			return false
		}
		field.SetFloat(value)
	default:
		return false
	}
	return true
}
