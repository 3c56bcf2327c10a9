package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the inspector can show.
type FieldInfo struct {
	Name      string
	Type      reflect.Type // element type when IsPointer
	Index     int
	IsPointer bool
}

// ReflectionCache remembers the inspectable fields of each component type.
// Func and chan fields are left out; there is nothing to display for them.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.fields.LoadOrStore(t, inspectableFields(t))
	return actual.([]FieldInfo)
}

func inspectableFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		typ := field.Type
		isPointer := typ.Kind() == reflect.Pointer
		if isPointer {
			typ = typ.Elem()
		}
		switch typ.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      typ,
			Index:     i,
			IsPointer: isPointer,
		})
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
