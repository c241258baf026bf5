package datacache

import (
	"testing"
	"time"

	"tablero/domain/tabular"
)

func rowsOf(v string) []tabular.Row {
	return []tabular.Row{{"v": v}}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := New(4, time.Minute)
	c.Put("a", rowsOf("1"))

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("expected hit for a")
	}
	if got[0]["v"] != "1" {
		t.Errorf("got %v", got)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("unexpected hit for b")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, 0)
	c.Put("a", rowsOf("1"))
	c.Put("b", rowsOf("2"))

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}
	c.Put("c", rowsOf("3"))

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should have survived")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(4, time.Minute)
	current := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("a", rowsOf("1"))
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, len = %d", c.Len())
	}
}

func TestCachePutRefreshes(t *testing.T) {
	c := New(4, time.Minute)
	current := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("a", rowsOf("1"))
	current = current.Add(50 * time.Second)
	c.Put("a", rowsOf("2"))
	current = current.Add(50 * time.Second)

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("refresh should have reset the TTL")
	}
	if got[0]["v"] != "2" {
		t.Errorf("got %v, want refreshed rows", got)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(4, 0)
	c.Put("a", rowsOf("1"))
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated entry still present")
	}
	c.Invalidate("ghost") // no-op
}
