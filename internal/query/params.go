package query

import (
	"math"
	"net/url"
	"strconv"
	"time"
)

const (
	// DateLayout is the calendar-date form accepted for startDate and endDate
	DateLayout = "2006-01-02"

	endOfDay = 24*time.Hour - time.Nanosecond
)

// Normalize coerces raw request parameters into a Filter.
// Only malformed dates are reported; everything else degrades to "absent".
func Normalize(values url.Values) (Filter, error) {
	filter := Filter{
		Keyword:     Lookup(values, "keyword").String(),
		Categorical: make(map[Field][]string, len(CategoricalFields)),
		Tags:        Lookup(values, "tags").Set(),
		Ranges:      make(map[Field]Range, len(RangeFields)),
	}

	for _, cf := range CategoricalFields {
		if set := Lookup(values, cf.Param).Set(); len(set) > 0 {
			filter.Categorical[cf.Field] = set
		}
	}

	for _, rf := range RangeFields {
		r := Range{
			Min: parseBound(Lookup(values, rf.MinParam)),
			Max: parseBound(Lookup(values, rf.MaxParam)),
		}
		if !r.IsZero() {
			filter.Ranges[rf.Field] = r
		}
	}

	start, err := parseDate("startDate", Lookup(values, "startDate"), false)
	if err != nil {
		return Filter{}, err
	}
	end, err := parseDate("endDate", Lookup(values, "endDate"), true)
	if err != nil {
		return Filter{}, err
	}
	filter.Dates = DateRange{Start: start, End: end}

	return filter, nil
}

// parseBound returns nil for empty or unparsable input so a bad bound
// only drops its own side of the range
func parseBound(v Value) *float64 {
	raw := v.String()
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseDate accepts YYYY-MM-DD or RFC3339. A calendar date used as an upper
// bound is moved to the last instant of that day so the whole day is included.
func parseDate(param string, v Value, upper bool) (*time.Time, error) {
	raw := v.String()
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(DateLayout, raw); err == nil {
		if upper {
			t = t.Add(endOfDay)
		}
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, invalidDate(param, raw)
	}
	t = t.UTC()
	return &t, nil
}
