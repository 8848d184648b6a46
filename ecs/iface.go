package ecs

import "unsafe"

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer boxed inside a component interface value.
func dataPointer(component any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&component)).data
}
