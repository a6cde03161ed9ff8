package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemory(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type summaryEntry struct {
	Locale string
	Text   string
}

func TestInMemory_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemory[string, summaryEntry]("summary-cache", DefaultExpiration, DefaultCleanupInterval)
	entry := summaryEntry{Locale: "en", Text: "is greater than 30"}
	cache.Set(context.Background(), "NUMBER|en|>30", entry, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "NUMBER|en|>30")
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestInMemory_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("key", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_GetWithRefresh_WithNoExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "key", time.Minute*60)
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestInMemory_GetWithRefresh_WithExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "key", "is 30", DefaultExpiration)

	got, ok := cache.GetWithRefresh(context.Background(), "key", time.Minute*60)
	require.True(t, ok)
	require.Equal(t, "is 30", got)
}

func TestInMemory_GetWithRefresh_ExtendsExpiry(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", 30*time.Millisecond, time.Minute)
	cache.Set(context.Background(), "key", "is 30", 30*time.Millisecond)

	_, ok := cache.GetWithRefresh(context.Background(), "key", time.Minute)
	require.True(t, ok)

	// Past the original TTL; the refreshed entry is still there.
	time.Sleep(60 * time.Millisecond)

	got, ok := cache.Get(context.Background(), "key")
	require.True(t, ok)
	require.Equal(t, "is 30", got)
}

func TestInMemory_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)

	err := cache.Delete(context.Background())
	require.NoError(t, err)
}

func TestInMemory_DeleteExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "key", "is 30", DefaultExpiration)

	err := cache.Delete(context.Background(), "key")
	require.NoError(t, err)

	got, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestInMemory_Flush(t *testing.T) {
	cache := NewInMemory[string, string]("summary-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "key", "is 30", DefaultExpiration)

	err := cache.Flush(context.Background())
	require.NoError(t, err)

	got, ok := cache.Get(context.Background(), "key")
	require.False(t, ok)
	require.Equal(t, "", got)
}
