package ecs

import "reflect"

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query, Resource
// and Events fields, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Access lists the component and resource types a system reads and writes.
type Access struct {
	Reads  []reflect.Type
	Writes []reflect.Type
}

// AccessDeclarer is implemented by systems that publish their data access.
// The Scheduler does not enforce it, it reports it through Plan so callers can
// check the ordering of a pipeline.
type AccessDeclarer interface {
	Access() Access
}

// TypeOf is shorthand for reflect.TypeFor, used when building Access lists.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
