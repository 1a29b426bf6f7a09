// Package cmap provides a concurrent-safe sharded map.
package cmap

import (
	"sort"
	"testing"
)

type versionedValue struct {
	data    string
	version uint64
}

func (v *versionedValue) GetVersion() uint64  { return v.version }
func (v *versionedValue) SetVersion(n uint64) { v.version = n }

func TestMap_Range(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	sum := 0
	m.Range(func(_ string, v int) bool {
		sum += v
		return true
	})
	if sum != 6 {
		t.Errorf("Range sum = %d, want 6", sum)
	}

	// Early stop
	visits := 0
	m.Range(func(_ string, _ int) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("Range with early stop visited %d, want 1", visits)
	}
}

func TestMap_Keys(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	keys := m.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}

func TestMap_Pop(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)

	v, ok := m.Pop("a")
	if !ok || v != 1 {
		t.Errorf("Pop(a) = %d, %v, want 1, true", v, ok)
	}
	if m.Has("a") {
		t.Error("key still present after Pop")
	}

	if _, ok := m.Pop("missing"); ok {
		t.Error("Pop(missing) = true, want false")
	}
}

func TestMap_SetIfAbsent(t *testing.T) {
	m := New[string, int]()

	if !m.SetIfAbsent("a", 1) {
		t.Error("SetIfAbsent on missing key = false, want true")
	}
	if m.SetIfAbsent("a", 2) {
		t.Error("SetIfAbsent on existing key = true, want false")
	}
	if v, _ := m.Get("a"); v != 1 {
		t.Errorf("Get(a) = %d, want 1", v)
	}
}

func TestMap_DeleteIf(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)

	if m.DeleteIf("a", func(v int) bool { return v == 2 }) {
		t.Error("DeleteIf removed key despite failing predicate")
	}
	if !m.DeleteIf("a", func(v int) bool { return v == 1 }) {
		t.Error("DeleteIf did not remove key with passing predicate")
	}
	if m.Has("a") {
		t.Error("key still present after DeleteIf")
	}
}

func TestCompareAndSwap(t *testing.T) {
	m := New[string, *versionedValue]()
	m.Set("a", &versionedValue{data: "v1", version: 1})

	ok := CompareAndSwap(m, "a", 1, &versionedValue{data: "v2"})
	if !ok {
		t.Fatal("CompareAndSwap with matching version failed")
	}

	got, _ := m.Get("a")
	if got.data != "v2" || got.version != 2 {
		t.Errorf("after swap: data=%s version=%d, want v2/2", got.data, got.version)
	}

	// Stale version must fail
	if CompareAndSwap(m, "a", 1, &versionedValue{data: "v3"}) {
		t.Error("CompareAndSwap with stale version succeeded")
	}

	// Missing key must fail
	if CompareAndSwap(m, "missing", 1, &versionedValue{}) {
		t.Error("CompareAndSwap on missing key succeeded")
	}
}

func TestCompareAndDelete(t *testing.T) {
	m := New[string, *versionedValue]()
	m.Set("a", &versionedValue{version: 3})

	if CompareAndDelete(m, "a", 2) {
		t.Error("CompareAndDelete with stale version succeeded")
	}
	if !CompareAndDelete(m, "a", 3) {
		t.Error("CompareAndDelete with matching version failed")
	}
	if m.Has("a") {
		t.Error("key still present after CompareAndDelete")
	}
}
