package sentence

import (
	"sort"
	"strings"
)

// Tags holds a FEATS or MISC column as a set of items. An item is either a
// key=value pair or a bare flag. The set is de-duplicated and sorted when
// serialized; input order is not meaningful.
type Tags []string

// ParseTags parses a pipe-separated column. "_" and "" yield a nil set.
func ParseTags(s string) Tags {
	if s == "" || s == "_" {
		return nil
	}
	var t Tags
	for _, item := range strings.Split(s, "|") {
		if item == "" {
			continue
		}
		t = t.Add(item)
	}
	return t
}

// String serializes the set sorted and pipe-joined, "_" when empty.
func (t Tags) String() string {
	if len(t) == 0 {
		return "_"
	}
	items := make([]string, len(t))
	copy(items, t)
	sort.Strings(items)
	return strings.Join(items, "|")
}

// Get returns the value of the first item with the given key.
func (t Tags) Get(key string) (string, bool) {
	prefix := key + "="
	for _, item := range t {
		if strings.HasPrefix(item, prefix) {
			return item[len(prefix):], true
		}
	}
	return "", false
}

// Has reports whether an exact item (pair or bare flag) is present.
func (t Tags) Has(item string) bool {
	for _, it := range t {
		if it == item {
			return true
		}
	}
	return false
}

// Add appends an item unless already present.
func (t Tags) Add(item string) Tags {
	if item == "" || t.Has(item) {
		return t
	}
	return append(t, item)
}

// Set replaces every item with the given key by a single key=value pair.
func (t Tags) Set(key, value string) Tags {
	out := t.Remove(key)
	return append(out, key+"="+value)
}

// Remove drops every item with the given key, and the bare flag of the same
// name.
func (t Tags) Remove(key string) Tags {
	prefix := key + "="
	out := t[:0:0]
	for _, item := range t {
		if item == key || strings.HasPrefix(item, prefix) {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Merge adds all items of other, de-duplicated.
func (t Tags) Merge(other Tags) Tags {
	for _, item := range other {
		t = t.Add(item)
	}
	return t
}

// Clone returns an independent copy.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	copy(out, t)
	return out
}
