// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestListIterationOrderMatchesInsertion(t *testing.T) {
	var l List[int]
	for i := 0; i < 5; i++ {
		l.PushBack(i)
	}
	var got []int
	l.Each(func(v int) { got = append(got, v) })
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestListDropEachExactlyOnce(t *testing.T) {
	var l List[int]
	entries := make([]*ListEntry[int], 0, 5)
	for i := 0; i < 5; i++ {
		entries = append(entries, l.PushBack(i))
	}
	drops := map[int]int{}
	l.Each(func(v int) { drops[v]++ })
	for _, e := range entries {
		e.Remove()
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", l.Len())
	}
	for v, n := range drops {
		if n != 1 {
			t.Fatalf("element %d visited %d times, want 1", v, n)
		}
	}
}

func TestListSingleElementFirstLastAgree(t *testing.T) {
	var l List[string]
	l.PushBack("only")
	first, ok := l.First()
	if !ok || first != "only" {
		t.Fatalf("First() = %q, %v", first, ok)
	}
	last, ok := l.Last()
	if !ok || last != "only" {
		t.Fatalf("Last() = %q, %v", last, ok)
	}
}

func TestArrayAddDeleteLastEmptiesStorage(t *testing.T) {
	a := NewArray[int]("test")
	for i := 0; i < 10; i++ {
		a.Add(i)
	}
	for a.Len() > 0 {
		a.Delete(a.Len() - 1)
	}
	if a.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", a.Len())
	}
	if a.items != nil {
		t.Fatalf("backing storage not freed after draining to empty")
	}
}

func TestArrayInsertShiftsLaterElements(t *testing.T) {
	a := NewArray[string]("test")
	a.Add("a")
	a.Add("b")
	a.Add("c")
	a.Insert(1, "x")
	want := []string{"a", "x", "b", "c"}
	for i, w := range want {
		if got := a.Get(i); got != w {
			t.Fatalf("Get(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestHashMapEachVisitsEveryKeyOnceAcrossGrowth(t *testing.T) {
	m := NewHashMap[int]()
	for i := 0; i < 100; i++ {
		m.Set(string(rune('a'+(i%26)))+string(rune(i)), i)
	}
	seen := map[string]bool{}
	m.Each(func(key string, value int) {
		if seen[key] {
			t.Fatalf("key %q visited more than once", key)
		}
		seen[key] = true
	})
	if len(seen) != m.Len() {
		t.Fatalf("Each visited %d keys, want %d", len(seen), m.Len())
	}
}

func TestHashMapGetReturnsInsertedValue(t *testing.T) {
	m := NewHashMap[string]()
	m.Set("key", "value")
	got, ok := m.Get("key")
	if !ok || got != "value" {
		t.Fatalf("Get(%q) = %q, %v", "key", got, ok)
	}
}
