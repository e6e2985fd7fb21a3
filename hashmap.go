// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "hash/fnv"

// hashmap.go implements a chained hashmap with an explicit power-of-two
// bucket count, matching the source's bucket-count invariant
// (§8 "for bucket counts that are powers of two, insert+find round-trip
// returns the inserted value"). A plain Go map would hide this detail,
// which the container tests exercise directly.

type hashEntry[V any] struct {
	key   string
	value V
}

// HashMap is a string-keyed hashmap with a bucket count always a power
// of two, growing (doubling) once the load factor exceeds 0.75.
type HashMap[V any] struct {
	buckets [][]hashEntry[V]
	count   int
}

// NewHashMap creates a HashMap with an initial bucket count of 8.
func NewHashMap[V any]() *HashMap[V] {
	return &HashMap[V]{buckets: make([][]hashEntry[V], 8)}
}

func (m *HashMap[V]) bucketFor(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32()) & (len(m.buckets) - 1)
}

// Set inserts or overwrites the value for key.
func (m *HashMap[V]) Set(key string, value V) {
	if float64(m.count+1) > 0.75*float64(len(m.buckets)) {
		m.grow()
	}
	b := m.bucketFor(key)
	for i, e := range m.buckets[b] {
		if e.key == key {
			m.buckets[b][i].value = value
			return
		}
	}
	m.buckets[b] = append(m.buckets[b], hashEntry[V]{key: key, value: value})
	m.count++
}

// Get returns the value for key and true, or the zero value and false.
func (m *HashMap[V]) Get(key string) (V, bool) {
	b := m.bucketFor(key)
	for _, e := range m.buckets[b] {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes key from the map, if present.
func (m *HashMap[V]) Delete(key string) {
	b := m.bucketFor(key)
	for i, e := range m.buckets[b] {
		if e.key == key {
			m.buckets[b] = append(m.buckets[b][:i], m.buckets[b][i+1:]...)
			m.count--
			return
		}
	}
}

// Len returns the number of stored entries.
func (m *HashMap[V]) Len() int { return m.count }

// Each visits every inserted key exactly once, order unspecified.
func (m *HashMap[V]) Each(fn func(key string, value V)) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			fn(e.key, e.value)
		}
	}
}

func (m *HashMap[V]) grow() {
	old := m.buckets
	m.buckets = make([][]hashEntry[V], len(old)*2)
	m.count = 0
	for _, bucket := range old {
		for _, e := range bucket {
			m.Set(e.key, e.value)
		}
	}
}
