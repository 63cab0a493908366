package objproc

import (
	"regexp"
	"sync"
)

// nameCache provides thread-safe caching of compiled name-filter
// patterns. Scans against a mesh library tend to repeat the same handful
// of patterns, so recompiling per request would dominate small scans.
type nameCache struct {
	mu       sync.RWMutex
	cache    map[string]*regexp.Regexp
	maxSize  int
	accesses map[string]int // access frequency for LRU-like eviction
}

// newNameCache creates a new pattern cache with the specified maximum
// size.
func newNameCache(maxSize int) *nameCache {
	return &nameCache{
		cache:    make(map[string]*regexp.Regexp),
		maxSize:  maxSize,
		accesses: make(map[string]int),
	}
}

// get retrieves a compiled pattern from the cache or compiles and caches
// a new one.
func (nc *nameCache) get(pattern string) (*regexp.Regexp, error) {
	nc.mu.RLock()
	re, ok := nc.cache[pattern]
	nc.mu.RUnlock()
	if ok {
		nc.mu.Lock()
		nc.accesses[pattern]++
		nc.mu.Unlock()
		return re, nil
	}

	nc.mu.Lock()
	defer nc.mu.Unlock()

	// another goroutine may have compiled it while we waited
	if re, ok := nc.cache[pattern]; ok {
		nc.accesses[pattern]++
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	// evict the least used entry once at capacity
	if len(nc.cache) >= nc.maxSize {
		evict := ""
		minAccess := int(^uint(0) >> 1)
		for p, count := range nc.accesses {
			if count < minAccess {
				minAccess = count
				evict = p
			}
		}
		delete(nc.cache, evict)
		delete(nc.accesses, evict)
	}

	nc.cache[pattern] = re
	nc.accesses[pattern] = 1

	return re, nil
}

// patternCache is the package-wide name-filter cache.
var patternCache = newNameCache(128)
