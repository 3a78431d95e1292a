package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Dictionary is an insertion-ordered map with case-insensitive keys.
// The first spelling of a key is kept; later writes only replace the value.
type Dictionary struct {
	keys   []string
	values []string
	index  map[string]int
}

func newDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// set overwrites the value for key if present, otherwise appends it.
func (d *Dictionary) set(key, value string) {
	fold := strings.ToLower(key)
	if i, ok := d.index[fold]; ok {
		d.values[i] = value
		return
	}
	d.index[fold] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
}

// Get returns the value stored for key, compared case-insensitively.
func (d *Dictionary) Get(key string) (string, bool) {
	i, ok := d.index[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return d.values[i], true
}

// Len returns the number of distinct keys.
func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (d *Dictionary) Each(fn func(key, value string)) {
	for i, k := range d.keys {
		fn(k, d.values[i])
	}
}

// MarshalJSON encodes the dictionary as a JSON object in insertion order.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// stringSet is a set of strings compared ordinally.
type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	s[v] = struct{}{}
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// orderedSet is a set of strings compared ordinally that remembers the order
// values were first added.
type orderedSet struct {
	values []string
	seen   map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

func (s *orderedSet) list() []string {
	return append(make([]string, 0, len(s.values)), s.values...)
}
