package parser

import (
	"regexp"

	"github.com/maypok86/otter"
)

// patternCacheSize bounds the compiled pattern cache. Two dialects times two
// shapes times the known attribute names fit comfortably.
const patternCacheSize = 256

// sharedPatterns is used by every parse; patterns depend only on dialect and
// attribute name, so one cache serves all files.
var sharedPatterns = mustPatternCache(patternCacheSize)

// patternCache holds compiled patterns keyed by their source text.
type patternCache struct {
	cache otter.Cache[string, *regexp.Regexp]
}

func newPatternCache(capacity int) (*patternCache, error) {
	cache, err := otter.MustBuilder[string, *regexp.Regexp](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &patternCache{cache: cache}, nil
}

func mustPatternCache(capacity int) *patternCache {
	c, err := newPatternCache(capacity)
	if err != nil {
		panic(err)
	}
	return c
}

// compile returns the compiled form of expr, compiling it on first use.
// Templates are package constants, so a compile failure is a programming error.
func (c *patternCache) compile(expr string) *regexp.Regexp {
	if re, ok := c.cache.Get(expr); ok {
		return re
	}
	re := regexp.MustCompile(expr)
	c.cache.Set(expr, re)
	return re
}
