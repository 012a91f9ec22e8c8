package lru

import "testing"

func TestCache_GetSet(t *testing.T) {
	c := New[int, string](0)

	if _, ok := c.Get(1); ok {
		t.Error("empty cache should miss")
	}
	c.Set(1, "one")
	v, ok := c.Get(1)
	if !ok || v != "one" {
		t.Errorf("Get(1) = (%q, %v), want (\"one\", true)", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](2)
	var evicted []int
	c.OnEvict = func(k int, _ string) { evicted = append(evicted, k) }

	c.Set(1, "a")
	c.Set(2, "b")
	c.Get(1) // 2 is now the oldest
	c.Set(3, "c")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("key 1 should still be cached")
	}
	if len(evicted) != 1 || evicted[0] != 2 {
		t.Errorf("evicted = %v, want [2]", evicted)
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}
	if got := len(c.Values()); got != 1 {
		t.Errorf("len(Values()) = %d, want 1", got)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}
