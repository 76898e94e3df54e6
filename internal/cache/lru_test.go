package cache

import (
	"sync"
	"testing"
)

func TestNewLRU(t *testing.T) {
	c := NewLRU[string, int](10)

	if c == nil {
		t.Fatal("expected cache to be created")
	}
	if c.capacity != 10 {
		t.Errorf("expected capacity 10, got %d", c.capacity)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got length %d", c.Len())
	}
}

func TestLRU_SetAndGet(t *testing.T) {
	c := NewLRU[string, string](10)

	c.Set("https://example.com", "artifact")

	value, found := c.Get("https://example.com")
	if !found {
		t.Fatal("expected to find key")
	}
	if value != "artifact" {
		t.Errorf("expected 'artifact', got '%v'", value)
	}
}

func TestLRU_GetNotFoundReturnsZero(t *testing.T) {
	c := NewLRU[string, *int](10)

	value, found := c.Get("missing")
	if found {
		t.Error("expected not to find missing key")
	}
	if value != nil {
		t.Errorf("expected nil value, got '%v'", value)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[string, int](10)

	c.Set("a", 1)
	c.Set("a", 2)

	value, _ := c.Get("a")
	if value != 2 {
		t.Errorf("expected 2, got %d", value)
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Get("a")
	c.Set("d", 4)

	if c.Len() != 3 {
		t.Errorf("expected length 3 after eviction, got %d", c.Len())
	}
	if _, found := c.Get("a"); !found {
		t.Error("expected a to survive (recently accessed)")
	}
	if _, found := c.Get("b"); found {
		t.Error("expected b to be evicted")
	}
	if _, found := c.Get("d"); !found {
		t.Error("expected d to be present")
	}
}

func TestLRU_DeleteAndClear(t *testing.T) {
	c := NewLRU[string, int](10)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	c.Delete("missing")

	if _, found := c.Get("a"); found {
		t.Error("expected a to be deleted")
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected length 0 after clear, got %d", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[string, int](10)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	hits, misses := c.Stats()
	if hits != 2 {
		t.Errorf("expected 2 hits, got %d", hits)
	}
	if misses != 1 {
		t.Errorf("expected 1 miss, got %d", misses)
	}
}

func TestLRU_ZeroCapacity(t *testing.T) {
	c := NewLRU[string, int](0)

	c.Set("a", 1)

	if c.Len() != 0 {
		t.Errorf("expected length 0 for zero capacity cache, got %d", c.Len())
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[string, int](100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + (id+j)%26))
				c.Set(key, id*100+j)
				c.Get(key)
			}
		}(i)
	}

	wg.Wait()

	if c.Len() > 26 {
		t.Errorf("expected at most 26 keys, got %d", c.Len())
	}
}
