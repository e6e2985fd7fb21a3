// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestAcquireReleaseBalancedDropsOnce(t *testing.T) {
	resetClassStats()
	drops := 0
	class := &ClassDescriptor{Name: "test.balanced", Drop: func(o *Object) { drops++ }}
	obj, err := NewObject(class, nil)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	Acquire(obj)
	Acquire(obj)
	Release(obj)
	Release(obj)
	Release(obj)
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
}

func TestStaticObjectNeverDrops(t *testing.T) {
	drops := 0
	class := &ClassDescriptor{Name: "test.static", Drop: func(o *Object) { drops++ }}
	obj := NewStatic(class)
	Acquire(obj)
	Release(obj)
	Release(obj)
	if drops != 0 {
		t.Fatalf("drops = %d, want 0 for a static object", drops)
	}
	if obj.Count() != staticRefcount {
		t.Fatalf("Count() = %d, want %d", obj.Count(), staticRefcount)
	}
}

func TestClassSnapshotZeroAfterAllReleased(t *testing.T) {
	resetClassStats()
	class := &ClassDescriptor{Name: "test.snapshot"}
	objs := make([]*Object, 5)
	for i := range objs {
		obj, err := NewObject(class, nil)
		if err != nil {
			t.Fatalf("NewObject: %v", err)
		}
		objs[i] = obj
	}
	for _, obj := range objs {
		Release(obj)
	}
	snap := ClassSnapshot()
	if want := "test.snapshot: 0\n"; snap != want {
		t.Fatalf("ClassSnapshot() = %q, want %q", snap, want)
	}
}
