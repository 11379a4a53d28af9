package query

import "net/url"

// Request is everything the storage layer needs to answer one listing query
type Request struct {
	Filter    Filter
	Predicate Predicate
	Sort      Sort
	Page      Page
}

// Parse runs the normalizer, compiler, sort resolver and pagination
// calculator over one request's parameters
func Parse(values url.Values, opts PageOptions) (Request, error) {
	req, err := ParseUnpaged(values)
	if err != nil {
		return Request{}, err
	}

	page, err := ParsePage(values, opts)
	if err != nil {
		return Request{}, err
	}
	req.Page = page

	return req, nil
}

// ParseUnpaged is Parse without pagination, for export and aggregate reads
func ParseUnpaged(values url.Values) (Request, error) {
	filter, err := Normalize(values)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Filter:    filter,
		Predicate: Compile(filter),
		Sort:      ResolveSort(Lookup(values, "sortBy").String()),
	}, nil
}
