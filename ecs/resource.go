package ecs

import (
	"reflect"
	"unsafe"
)

// resourceEntry holds the storage-owned copy of a resource value.
type resourceEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// Resource provides direct access to a single value that is not associated
// with any entity. Use it for world-wide state such as configuration or
// environment values.
type Resource[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewResource creates a Resource accessor for the given storage.
// If the resource does not exist yet it is created from initializer, or from
// the zero value when no initializer is given. The resource is guaranteed to
// exist in storage after the call.
func NewResource[T any](storage *Storage, initializer ...T) *Resource[T] {
	if storage.resourceEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddResource(value)
	}

	r := &Resource[T]{}
	r.Init(storage)
	return r
}

// Init binds the accessor to storage. The Scheduler calls it for Resource
// fields of registered systems.
func (r *Resource[T]) Init(storage *Storage) {
	r.storage = storage
	r.componentPtr = nil
	r.updateCache()
}

// Get returns a pointer to the resource, or nil if it has not been added.
func (r *Resource[T]) Get() *T {
	if r.componentPtr == nil {
		r.updateCache()
	}
	if r.componentPtr == nil {
		return nil
	}
	return (*T)(r.componentPtr)
}

// Exists returns true if the resource has been added to storage
func (r *Resource[T]) Exists() bool {
	return r.Get() != nil
}

func (r *Resource[T]) updateCache() {
	if r.storage == nil {
		return
	}
	if entry := r.storage.resourceEntry(reflect.TypeFor[T]()); entry != nil {
		r.componentPtr = entry.dataPtr
	}
}

func (s *Storage) resourceEntry(t reflect.Type) *resourceEntry {
	return s.resources[t]
}

// AddResource stores value as the resource for its type. A pointer argument is
// adopted as the backing memory; any other value is copied. Adding a resource
// that already exists overwrites it in place, so outstanding pointers observe
// the new value.
func (s *Storage) AddResource(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("cannot add nil resource")
	}

	var typ reflect.Type
	var src reflect.Value
	if v.Kind() == reflect.Ptr {
		typ = v.Type().Elem()
		src = v
	} else {
		typ = v.Type()
		src = reflect.New(typ)
		src.Elem().Set(v)
	}

	if entry, ok := s.resources[typ]; ok {
		reflect.NewAt(typ, entry.dataPtr).Elem().Set(src.Elem())
		return
	}

	s.resources[typ] = &resourceEntry{
		typ:     typ,
		dataPtr: src.UnsafePointer(),
	}
}

// ReadResource points out at the stored resource. out must be a **T.
// Returns false if no resource of type T exists.
func (s *Storage) ReadResource(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadResource requires a pointer to a pointer")
	}

	typ := rv.Elem().Type().Elem()
	entry := s.resourceEntry(typ)
	if entry == nil {
		return false
	}
	rv.Elem().Set(reflect.NewAt(typ, entry.dataPtr))
	return true
}
