package query

import (
	"net/url"
	"strings"
)

// ValueKind tags how a raw query parameter arrived
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindScalar
	KindList
)

// Value is a raw request parameter normalized into Absent, Scalar or List
// before any filter logic looks at it
type Value struct {
	Kind  ValueKind
	items []string
}

// Absent returns the empty value
func Absent() Value {
	return Value{Kind: KindAbsent}
}

// Scalar wraps a single raw string
func Scalar(s string) Value {
	return Value{Kind: KindScalar, items: []string{s}}
}

// List wraps repeated raw strings
func List(items ...string) Value {
	if len(items) == 0 {
		return Absent()
	}
	if len(items) == 1 {
		return Scalar(items[0])
	}
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{Kind: KindList, items: cp}
}

// Lookup reads a parameter from url.Values; the bracketed form (region[]=x)
// sent by array-aware clients is merged with the plain name
func Lookup(values url.Values, name string) Value {
	raw := append([]string{}, values[name]...)
	raw = append(raw, values[name+"[]"]...)
	return List(raw...)
}

// IsAbsent reports whether the parameter was not supplied
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// String returns the trimmed scalar form; for a list the first element wins
// and an absent value yields ""
func (v Value) String() string {
	if len(v.items) == 0 {
		return ""
	}
	return strings.TrimSpace(v.items[0])
}

// Set returns trimmed, de-duplicated, non-empty members in arrival order.
// A value holding only empty strings yields nil, which callers treat as no filter.
func (v Value) Set() []string {
	if len(v.items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(v.items))
	var out []string
	for _, item := range v.items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
