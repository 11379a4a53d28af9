package query

import "strings"

// Direction is a sort order
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort is a resolved ordering directive
type Sort struct {
	Field     Field
	Direction Direction
}

// DefaultSort orders newest first
var DefaultSort = Sort{Field: FieldDate, Direction: Descending}

// sortAliases maps the external sortBy field token to a logical field
var sortAliases = map[string]Field{
	"date":        FieldDate,
	"amount":      FieldAmount,
	"finalAmount": FieldFinalAmount,
	"age":         FieldAge,
	"name":        FieldCustomerName,
	"customer":    FieldCustomerName,
	"quantity":    FieldQuantity,
	"id":          FieldTransactionID,
	"category":    FieldProductCategory,
}

// ResolveSort maps a "<field>_<direction>" token to a Sort.
// An empty token yields DefaultSort. An unknown field token is passed through
// verbatim and storage decides whether it can order by it.
func ResolveSort(raw string) Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort
	}

	fieldToken, dirToken := raw, ""
	if i := strings.LastIndex(raw, "_"); i >= 0 {
		fieldToken, dirToken = raw[:i], raw[i+1:]
	}

	direction := Ascending
	if dirToken == string(Descending) {
		direction = Descending
	}

	field, ok := sortAliases[fieldToken]
	if !ok {
		field = Field(fieldToken)
	}
	return Sort{Field: field, Direction: direction}
}

// Descending reports whether the order is descending
func (s Sort) Descending() bool {
	return s.Direction == Descending
}

func (s Sort) String() string {
	return string(s.Field) + "_" + string(s.Direction)
}
