package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreWith(t *testing.T) {
	seed := map[string]any{"program.path": "jdupes"}
	store := NewConfigStoreWith(seed)

	seed["program.path"] = "changed"

	assert.Equal(t, "jdupes", store.GetString("program.path"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("listing.switches", "-ld"))
	require.NoError(t, store.Set("listing.switches", "-l"))

	val, ok := store.Get("listing.switches")
	assert.True(t, ok)
	assert.Equal(t, "-l", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"s":      "text",
		"i":      42,
		"i64":    int64(7),
		"f":      3.9,
		"b":      true,
		"slice":  []string{"-r", "-H"},
		"anys":   []any{"-r", 1, "-n"},
		"wrong":  struct{}{},
		"number": 5,
	})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("number"))
	assert.Equal(t, 42, store.GetInt("i"))
	assert.Equal(t, 7, store.GetInt("i64"))
	assert.Equal(t, 3, store.GetInt("f"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
	assert.Equal(t, []string{"-r", "-H"}, store.GetStringSlice("slice"))
	assert.Equal(t, []string{"-r", "-n"}, store.GetStringSlice("anys"))
	assert.Nil(t, store.GetStringSlice("wrong"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("history.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("history.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("history.limit")
	assert.True(t, ok)
}
