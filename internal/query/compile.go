package query

// Compile folds a normalized Filter into a single Predicate.
// Clauses are emitted in a fixed order and only for active filters; with no
// active filter the result is the universal predicate.
func Compile(f Filter) Predicate {
	var clauses []Condition

	if f.Keyword != "" {
		clauses = append(clauses, keywordClause(f.Keyword))
	}

	for _, cf := range CategoricalFields {
		if set := f.Categorical[cf.Field]; len(set) > 0 {
			clauses = append(clauses, Condition{Op: OpIn, Field: cf.Field, Value: copyStrings(set)})
		}
	}

	if len(f.Tags) > 0 {
		clauses = append(clauses, Condition{Op: OpOverlaps, Field: FieldTags, Value: copyStrings(f.Tags)})
	}

	for _, rf := range RangeFields {
		if r, ok := f.Ranges[rf.Field]; ok {
			clauses = append(clauses, rangeClauses(rf.Field, r)...)
		}
	}

	if f.Dates.Start != nil {
		clauses = append(clauses, Condition{Op: OpGte, Field: FieldDate, Value: *f.Dates.Start})
	}
	if f.Dates.End != nil {
		clauses = append(clauses, Condition{Op: OpLte, Field: FieldDate, Value: *f.Dates.End})
	}

	return Predicate{Root: Condition{Op: OpAnd, Children: clauses}}
}

// keywordClause keeps the keyword search as one OR group
func keywordClause(keyword string) Condition {
	children := make([]Condition, 0, len(KeywordFields))
	for _, field := range KeywordFields {
		children = append(children, Condition{Op: OpContains, Field: field, Value: keyword})
	}
	return Condition{Op: OpOr, Children: children}
}

func rangeClauses(field Field, r Range) []Condition {
	var out []Condition
	if r.Min != nil {
		out = append(out, Condition{Op: OpGte, Field: field, Value: *r.Min})
	}
	if r.Max != nil {
		out = append(out, Condition{Op: OpLte, Field: field, Value: *r.Max})
	}
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
