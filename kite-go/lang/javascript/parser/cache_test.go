package parser

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseCache(t *testing.T) {
	// make sure cache is empty on start
	PurgeParseCache()
	assert.Equal(t, 0, parseCache.Len(), "parse cache should be empty on start")

	// get on an empty parse cache should not return anything
	contents := []byte("test contents")
	p, ok := getCachedParse(contents, Options{})
	assert.False(t, ok, "contents should not exist")
	assert.Nil(t, p, "contents should not exist")

	// add ten entries
	for i := 0; i < 10; i++ {
		contents = []byte(fmt.Sprintf("test(contents, %d)", i))
		Parse(contents, Options{})
	}
	assert.Equal(t, 10, parseCache.Len(), "parse cache should have ten entries.")

	// adding the same entries should not result in more items in the cache
	for i := 0; i < 10; i++ {
		contents = []byte(fmt.Sprintf("test(contents, %d)", i))
		Parse(contents, Options{})
	}
	assert.Equal(t, 10, parseCache.Len(), "parse cache should have ten entries.")

	// the same contents with different options are cached separately
	Parse(contents, Options{Tokens: true})
	assert.Equal(t, 11, parseCache.Len(), "parse cache should have eleven entries.")

	// options that do not affect the result share an entry
	Parse(contents, Options{TraceWriter: nil, NoCache: false})
	assert.Equal(t, 11, parseCache.Len(), "parse cache should have eleven entries.")

	// bypassing the cache does not add entries
	Parse([]byte("uncached"), Options{NoCache: true})
	assert.Equal(t, 11, parseCache.Len(), "parse cache should have eleven entries.")

	// purging the cache should result in an empty cache
	PurgeParseCache()
	assert.Equal(t, 0, parseCache.Len(), "parse cache should be empty after purge")
}

func Test_ParseCacheKeepsErrors(t *testing.T) {
	PurgeParseCache()

	contents := []byte("a +")
	prog, err := Parse(contents, Options{})
	require.Error(t, err)
	assert.Nil(t, prog)

	entry, ok := getCachedParse(contents, Options{})
	require.True(t, ok)
	assert.Equal(t, err, entry.err)

	prog, err2 := Parse(contents, Options{})
	assert.Nil(t, prog)
	assert.Equal(t, err, err2)
}

func Test_StaleCacheEntries(t *testing.T) {
	// make sure cache is empty on start
	PurgeParseCache()
	assert.Equal(t, 0, parseCache.Len(), "parse cache should be empty on start")

	contents := []byte("test contents")
	key := keyFor(contents, Options{})
	now := time.Now()
	lock.Lock()
	parseCache.Add(key, &parseEntry{
		lastAccessTs: now.Add(-20 * time.Minute),
	})
	lock.Unlock()
	assert.Equal(t, 1, parseCache.Len(), "parse cache should have one entry")

	// getting entry that does not exist should cause stale entries to be removed
	getCachedParse([]byte("not exist"), Options{})
	assert.Equal(t, 0, parseCache.Len(), "parse cache should be empty")

	// getting entry that exists should cause stale entries to be removed
	oldContents := []byte("old test contents")
	oldKey := keyFor(oldContents, Options{})
	now = time.Now()
	lock.Lock()
	parseCache.Add(key, &parseEntry{
		lastAccessTs: time.Now(),
	})
	parseCache.Add(oldKey, &parseEntry{
		lastAccessTs: now.Add(-20 * time.Minute),
	})
	lock.Unlock()
	assert.Equal(t, 2, parseCache.Len(), "parse cache should have two entries")
	getCachedParse(contents, Options{})
	assert.Equal(t, 1, parseCache.Len(), "parse cache should have one entry")

	// parsing should cause stale entries to be removed
	PurgeParseCache()
	now = time.Now()
	lock.Lock()
	parseCache.Add(oldKey, &parseEntry{
		lastAccessTs: now.Add(-20 * time.Minute),
	})
	lock.Unlock()
	assert.Equal(t, 1, parseCache.Len(), "parse cache should have one entry")
	// parse should add a new entry and remove the stale entry
	Parse([]byte("test(contents)"), Options{})
	assert.Equal(t, 1, parseCache.Len(), "parse cache should have one entry")
}

func Test_LimitCacheEntries(t *testing.T) {
	// make sure cache is empty on start
	PurgeParseCache()
	assert.Equal(t, 0, parseCache.Len(), "parse cache should be empty on start")

	now := time.Now()
	for i := 0; i < parseCacheSize+5; i++ {
		contents := []byte(fmt.Sprintf("test contents %d", i))
		lock.Lock()
		parseCache.Add(keyFor(contents, Options{}), &parseEntry{
			lastAccessTs: now,
		})
		lock.Unlock()
	}
	assert.Equal(t, parseCacheSize, parseCache.Len(), "parse cache should be at capacity")

	// the oldest entries were evicted
	_, ok := getCachedParse([]byte("test contents 0"), Options{})
	assert.False(t, ok)
	_, ok = getCachedParse([]byte(fmt.Sprintf("test contents %d", parseCacheSize+4)), Options{})
	assert.True(t, ok)

	PurgeParseCache()
}

func Test_CachedProgramsAreShared(t *testing.T) {
	PurgeParseCache()
	src := []byte("var shared = 1;")

	first, err := Parse(src, Options{})
	require.NoError(t, err)
	second, err := Parse(src, Options{})
	require.NoError(t, err)
	assert.True(t, first == second, "cached parses should return the same program")

	private, err := Parse(src, Options{NoCache: true})
	require.NoError(t, err)
	assert.False(t, first == private, "uncached parses should return a new program")
}
