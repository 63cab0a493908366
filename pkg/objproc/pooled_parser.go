package objproc

import "sync"

// parserPool reuses Parser instances to reduce GC pressure during
// directory scans. A Parser keeps its collection and scratch capacity
// across files, so reusing one avoids re-growing those buffers for every
// file. A Parser is single-threaded; the pool hands each worker its own
// instance and never shares one between two in-flight files.
var parserPool = sync.Pool{
	New: func() any {
		return NewParser(false)
	},
}

// acquireParser checks a clean Parser out of the pool, configured for
// the requested triangulation mode.
func acquireParser(triangulate bool) *Parser {
	p := parserPool.Get().(*Parser)
	p.triangulate = triangulate
	return p
}

// releaseParser clears a Parser and returns it to the pool.
func releaseParser(p *Parser) {
	p.Clear()
	parserPool.Put(p)
}
