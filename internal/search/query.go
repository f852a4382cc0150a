package search

import (
	"net/url"
	"strconv"
)

// Query keys understood by the search backend.
const (
	KeyText = "q"
	KeyPage = "page"
	KeySize = "size"
	KeySort = "sort"
)

const DefaultPageSize = 10

// Query is an immutable set of search parameters. Every method that
// changes a value returns a new Query; the receiver is never modified,
// so a Query can be shared between the store and any number of views.
//
// A key set to "" counts as absent everywhere except Merge, where it
// removes the key from the base query.
type Query struct {
	kv map[string]string
}

// NewQuery builds a query from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewQuery(pairs ...string) Query {
	kv := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		kv[pairs[i]] = pairs[i+1]
	}
	return Query{kv: kv}
}

// QueryFromMap copies m into a new Query.
func QueryFromMap(m map[string]string) Query {
	kv := make(map[string]string, len(m))
	for k, v := range m {
		kv[k] = v
	}
	return Query{kv: kv}
}

func (q Query) Get(key string) string { return q.kv[key] }

func (q Query) Len() int { return len(q.ToMap()) }

// With returns a copy of q with key set to value. An empty value removes key.
func (q Query) With(key, value string) Query {
	kv := make(map[string]string, len(q.kv)+1)
	for k, v := range q.kv {
		kv[k] = v
	}
	if value == "" {
		delete(kv, key)
	} else {
		kv[key] = value
	}
	return Query{kv: kv}
}

// Merge returns q overlaid with o; keys in o win and keys o sets to ""
// are removed.
func (q Query) Merge(o Query) Query {
	kv := q.ToMap()
	for k, v := range o.kv {
		if v == "" {
			delete(kv, k)
		} else {
			kv[k] = v
		}
	}
	return Query{kv: kv}
}

// Page is the 1-based page number, defaulting to 1.
func (q Query) Page() int {
	if n, err := strconv.Atoi(q.kv[KeyPage]); err == nil && n > 0 {
		return n
	}
	return 1
}

// Size is the page size, defaulting to DefaultPageSize.
func (q Query) Size() int {
	if n, err := strconv.Atoi(q.kv[KeySize]); err == nil && n > 0 {
		return n
	}
	return DefaultPageSize
}

func (q Query) Text() string { return q.kv[KeyText] }

func (q Query) Sort() string { return q.kv[KeySort] }

// Offset is the row offset of the first result on Page.
func (q Query) Offset() int { return (q.Page() - 1) * q.Size() }

// ToMap returns a plain copy of the set parameters for callers that must
// not depend on Query.
func (q Query) ToMap() map[string]string {
	out := make(map[string]string, len(q.kv))
	for k, v := range q.kv {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func (q Query) Equal(o Query) bool {
	a, b := q.ToMap(), o.ToMap()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// String renders the set parameters URL-encoded and sorted by key, so
// values containing '&' or '=' stay unambiguous.
func (q Query) String() string {
	v := make(url.Values, len(q.kv))
	for k, val := range q.ToMap() {
		v.Set(k, val)
	}
	return v.Encode()
}
