package parser

import (
	"sync"
	"time"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"
	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
)

const (
	// parseCacheSize specifies the max number of parsed files to cache
	parseCacheSize = 1000
	// staleCutoff specifies when cache entries are considered stale
	staleCutoff = 10 * time.Minute
)

var (
	lock       sync.Mutex
	parseCache = mustNewCache(parseCacheSize)
)

// cacheKey identifies a parse by its contents and the options that affect the result.
type cacheKey struct {
	hash uint64
	opts string
}

type parseEntry struct {
	lastAccessTs time.Time
	prog         *ast.ProgramNode
	err          error
}

func mustNewCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// PurgeParseCache purges the parse cache
func PurgeParseCache() {
	lock.Lock()
	defer lock.Unlock()
	parseCache.Purge()
}

// --

func getCachedParse(contents []byte, opts Options) (*parseEntry, bool) {
	key := keyFor(contents, opts)
	lock.Lock()
	defer lock.Unlock()
	removeStaleCacheEntriesLocked()
	entry, ok := parseCache.Get(key)
	if !ok {
		return nil, false
	}
	// update last access ts if entry existed
	e := entry.(*parseEntry)
	e.lastAccessTs = time.Now()
	return e, true
}

func cacheParse(contents []byte, opts Options, prog *ast.ProgramNode, err error) {
	key := keyFor(contents, opts)
	lock.Lock()
	defer lock.Unlock()
	removeStaleCacheEntriesLocked()
	parseCache.Add(key, &parseEntry{
		lastAccessTs: time.Now(),
		prog:         prog,
		err:          err,
	})
}

// removeStaleCacheEntriesLocked removes entries with a timestamp greater than the cutoff
func removeStaleCacheEntriesLocked() {
	for _, k := range parseCache.Keys() {
		v, ok := parseCache.Peek(k)
		if ok && time.Since(v.(*parseEntry).lastAccessTs) > staleCutoff {
			parseCache.Remove(k)
		}
	}
}

// --

func keyFor(contents []byte, opts Options) cacheKey {
	return cacheKey{
		hash: hashContents(contents),
		opts: opts.fingerprint(),
	}
}

func hashContents(contents []byte) uint64 {
	return spooky.Hash64(contents)
}
