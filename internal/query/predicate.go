package query

import (
	"strconv"
	"strings"
	"time"

	"retail-sales-api/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Op is a predicate operator
type Op string

const (
	OpAnd      Op = "and"
	OpOr       Op = "or"
	OpContains Op = "contains" // case-insensitive, unanchored substring
	OpIn       Op = "in"       // field value is a member of []string
	OpOverlaps Op = "overlaps" // list field shares at least one element with []string
	OpGte      Op = "gte"
	OpLte      Op = "lte"
)

// Condition is one node of a predicate tree. Logical nodes (and, or) carry
// Children; comparison nodes carry Field and Value.
//
// Value types: string for contains, []string for in/overlaps, float64 or
// time.Time for gte/lte.
type Condition struct {
	Op       Op
	Field    Field
	Value    any
	Children []Condition
}

// Predicate is the compiled boolean expression a record must satisfy
type Predicate struct {
	Root Condition
}

// All returns the universal predicate
func All() Predicate {
	return Predicate{Root: Condition{Op: OpAnd}}
}

// IsUniversal reports whether the predicate has no clauses
func (p Predicate) IsUniversal() bool {
	return p.Root.Op == OpAnd && len(p.Root.Children) == 0
}

// Clauses returns the top-level AND operands
func (p Predicate) Clauses() []Condition {
	if p.Root.Op != OpAnd {
		return []Condition{p.Root}
	}
	return p.Root.Children
}

// Matches evaluates the predicate against a single record in memory
func (p Predicate) Matches(t *models.Transaction) bool {
	return p.Root.Matches(t)
}

// Matches evaluates the condition against a single record in memory
func (c Condition) Matches(t *models.Transaction) bool {
	switch c.Op {
	case OpAnd:
		for _, child := range c.Children {
			if !child.Matches(t) {
				return false
			}
		}
		return true
	case OpOr:
		for _, child := range c.Children {
			if child.Matches(t) {
				return true
			}
		}
		return false
	case OpContains:
		needle, _ := c.Value.(string)
		return strings.Contains(Lower(stringField(t, c.Field)), Lower(needle))
	case OpIn:
		set, _ := c.Value.([]string)
		value := stringField(t, c.Field)
		for _, s := range set {
			if s == value {
				return true
			}
		}
		return false
	case OpOverlaps:
		set, _ := c.Value.([]string)
		for _, have := range listField(t, c.Field) {
			for _, want := range set {
				if have == want {
					return true
				}
			}
		}
		return false
	case OpGte, OpLte:
		cmp, ok := compareField(t, c.Field, c.Value)
		if !ok {
			return false
		}
		if c.Op == OpGte {
			return cmp >= 0
		}
		return cmp <= 0
	default:
		return false
	}
}

// Lower is the case mapping keyword search uses on both sides. The sqlite
// driver registers it as SQL lower() so stored rows and the in-memory
// predicate agree beyond ASCII.
func Lower(s string) string {
	// a Caser holds state, so one per call
	return cases.Lower(language.Und).String(s)
}

func stringField(t *models.Transaction, f Field) string {
	switch f {
	case FieldTransactionID:
		return strconv.FormatInt(t.TransactionID, 10)
	case FieldCustomerID:
		return t.CustomerID
	case FieldCustomerName:
		return t.CustomerName
	case FieldPhone:
		return t.Phone
	case FieldGender:
		return t.Gender
	case FieldRegion:
		return t.Region
	case FieldProductName:
		return t.ProductName
	case FieldProductCategory:
		return t.ProductCategory
	case FieldPaymentMethod:
		return t.PaymentMethod
	case FieldStatus:
		return t.Status
	case FieldDeliveryType:
		return t.DeliveryType
	case FieldStoreLocation:
		return t.StoreLocation
	default:
		return ""
	}
}

func listField(t *models.Transaction, f Field) []string {
	if f == FieldTags {
		return t.Tags
	}
	return nil
}

// compareField returns -1, 0 or 1 comparing the record's field to bound
func compareField(t *models.Transaction, f Field, bound any) (int, bool) {
	switch b := bound.(type) {
	case time.Time:
		if f != FieldDate {
			return 0, false
		}
		return t.Date.Compare(b), true
	case float64:
		var value decimal.Decimal
		switch f {
		case FieldAge:
			value = decimal.NewFromInt(int64(t.Age))
		case FieldQuantity:
			value = decimal.NewFromInt(int64(t.Quantity))
		case FieldAmount:
			value = t.Amount
		case FieldFinalAmount:
			value = t.FinalAmount
		default:
			return 0, false
		}
		return value.Cmp(decimal.NewFromFloat(b)), true
	default:
		return 0, false
	}
}
