// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// object.go implements the reference-counting runtime (§4.1). It is
// grounded on entity.go's generational id allocator for the "per-class
// active instance" bookkeeping style and on original_source/core/object.c
// for the class-descriptor + classes-snapshot diagnostic.

import (
	"fmt"
	"sort"
	"sync"
)

// staticRefcount marks an object that is statically allocated and never
// freed; acquire/release on it are no-ops.
const staticRefcount = -1

// ClassDescriptor is the static record every refcounted class registers
// once. Name is used for the active-instance accounting and diagnostic
// snapshot; Make, if set, runs once at construction time.
type ClassDescriptor struct {
	Name string
	Make func(obj *Object, opts any) error
	Drop func(obj *Object)
}

// Object is embedded (by convention, as the first field) in every
// refcounted engine type.
type Object struct {
	count int32
	class *ClassDescriptor
}

var (
	classMu    sync.Mutex
	classStats = map[string]int{}
)

// NewObject allocates an object of the given class, running its
// make-callback if any, and registers it into the per-class active
// count. The returned Object has a single outstanding reference.
func NewObject(class *ClassDescriptor, opts any) (*Object, error) {
	if class == nil || class.Name == "" {
		return nil, New(InvalidArguments, "object: class descriptor required")
	}
	o := &Object{count: 1, class: class}
	if class.Make != nil {
		if err := class.Make(o, opts); err != nil {
			return nil, err
		}
	}
	classMu.Lock()
	classStats[class.Name]++
	classMu.Unlock()
	return o, nil
}

// NewStatic wraps an already-existing value as a statically allocated,
// never-freed object. acquire/release are no-ops and it never appears
// in the per-class active count (matching "static instances excluded").
func NewStatic(class *ClassDescriptor) *Object {
	return &Object{count: staticRefcount, class: class}
}

// Acquire increments the reference count. It is illegal (and returns
// InvalidOperation) to acquire a reference from a count of zero, since
// that means the object has already been dropped.
func Acquire(o *Object) error {
	if o.count == staticRefcount {
		return nil
	}
	if o.count <= 0 {
		return New(InvalidOperation, "object: acquire on a released object")
	}
	o.count++
	return nil
}

// Release decrements the reference count, invoking the class's Drop
// callback synchronously on transition to zero. Releasing a static
// object is a no-op.
func Release(o *Object) {
	if o.count == staticRefcount {
		return
	}
	o.count--
	if o.count == 0 {
		if o.class != nil && o.class.Drop != nil {
			o.class.Drop(o)
		}
		if o.class != nil {
			classMu.Lock()
			classStats[o.class.Name]--
			classMu.Unlock()
		}
	}
}

// ReleaseLast behaves like Release but panics if the caller did not in
// fact hold the sole outstanding reference. Used where a caller
// provably owns the only reference and an extra one floating around
// elsewhere would indicate a logic error worth catching immediately.
func ReleaseLast(o *Object) {
	if o.count == staticRefcount {
		return
	}
	if o.count != 1 {
		panic(fmt.Sprintf("object: ReleaseLast called with refcount %d", o.count))
	}
	Release(o)
}

// Count returns the current reference count, or -1 for static objects.
func (o *Object) Count() int32 { return o.count }

// ClassSnapshot returns a formatted "class-name: active-count" summary
// for every class that has ever had an instance, sorted by name for
// deterministic diagnostic output.
func ClassSnapshot() string {
	classMu.Lock()
	defer classMu.Unlock()
	names := make([]string, 0, len(classStats))
	for name := range classStats {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for _, name := range names {
		out += fmt.Sprintf("%s: %d\n", name, classStats[name])
	}
	return out
}

// resetClassStats clears the global class accounting. Test-only: lets
// package tests assert a clean baseline instead of depending on
// execution order across the test binary.
func resetClassStats() {
	classMu.Lock()
	defer classMu.Unlock()
	classStats = map[string]int{}
}
