package repositories

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"retail-sales-api/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnsupportedCondition = errors.New("unsupported predicate condition")

// columns maps logical fields to transactions table columns. Anything not
// listed here never reaches SQL.
var columns = map[query.Field]string{
	query.FieldTransactionID:   "transaction_id",
	query.FieldDate:            "date",
	query.FieldCustomerID:      "customer_id",
	query.FieldCustomerName:    "customer_name",
	query.FieldPhone:           "phone",
	query.FieldGender:          "gender",
	query.FieldAge:             "age",
	query.FieldRegion:          "region",
	query.FieldProductName:     "product_name",
	query.FieldProductCategory: "product_category",
	query.FieldQuantity:        "quantity",
	query.FieldAmount:          "amount",
	query.FieldFinalAmount:     "final_amount",
	query.FieldPaymentMethod:   "payment_method",
	query.FieldStatus:          "status",
	query.FieldDeliveryType:    "delivery_type",
	query.FieldStoreLocation:   "store_location",
}

const tagExistsSQL = "EXISTS (SELECT 1 FROM transaction_tags tt WHERE tt.transaction_id = transactions.transaction_id AND tt.tag IN ?)"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matching scopes a query to the records accepted by the predicate
func matching(pred query.Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pred.IsUniversal() {
			return db
		}
		sql, args, err := renderCondition(pred.Root)
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		return db.Where(sql, args...)
	}
}

// renderCondition turns a predicate node into a parameterized SQL fragment
func renderCondition(c query.Condition) (string, []interface{}, error) {
	switch c.Op {
	case query.OpAnd, query.OpOr:
		if len(c.Children) == 0 {
			if c.Op == query.OpAnd {
				return "1 = 1", nil, nil
			}
			return "1 = 0", nil, nil
		}
		parts := make([]string, 0, len(c.Children))
		var args []interface{}
		for _, child := range c.Children {
			sql, childArgs, err := renderCondition(child)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, "("+sql+")")
			args = append(args, childArgs...)
		}
		sep := " AND "
		if c.Op == query.OpOr {
			sep = " OR "
		}
		return strings.Join(parts, sep), args, nil

	case query.OpContains:
		col, err := column(c.Field)
		if err != nil {
			return "", nil, err
		}
		keyword, ok := c.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: contains on %s needs a string", ErrUnsupportedCondition, c.Field)
		}
		pattern := "%" + likeEscaper.Replace(query.Lower(keyword)) + "%"
		return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col), []interface{}{pattern}, nil

	case query.OpIn:
		col, err := column(c.Field)
		if err != nil {
			return "", nil, err
		}
		set, ok := c.Value.([]string)
		if !ok || len(set) == 0 {
			return "", nil, fmt.Errorf("%w: in on %s needs a non-empty set", ErrUnsupportedCondition, c.Field)
		}
		return col + " IN ?", []interface{}{set}, nil

	case query.OpOverlaps:
		set, ok := c.Value.([]string)
		if c.Field != query.FieldTags || !ok || len(set) == 0 {
			return "", nil, fmt.Errorf("%w: overlaps on %s", ErrUnsupportedCondition, c.Field)
		}
		return tagExistsSQL, []interface{}{set}, nil

	case query.OpGte, query.OpLte:
		col, err := column(c.Field)
		if err != nil {
			return "", nil, err
		}
		switch c.Value.(type) {
		case float64, time.Time:
		default:
			return "", nil, fmt.Errorf("%w: %s on %s with %T", ErrUnsupportedCondition, c.Op, c.Field, c.Value)
		}
		op := ">="
		if c.Op == query.OpLte {
			op = "<="
		}
		return fmt.Sprintf("%s %s ?", col, op), []interface{}{c.Value}, nil

	default:
		return "", nil, fmt.Errorf("%w: operator %q", ErrUnsupportedCondition, c.Op)
	}
}

func column(f query.Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", ErrUnsupportedCondition, f)
	}
	return col, nil
}

// ordering maps a sort directive to ORDER BY columns. Unknown fields fall
// back to the default sort; transaction_id breaks ties so pages are stable.
func ordering(s query.Sort) clause.OrderBy {
	col, ok := columns[s.Field]
	if !ok {
		slog.Warn("unknown sort field, using default",
			"sort_field", string(s.Field),
			"default", query.DefaultSort.String(),
		)
		s = query.DefaultSort
		col = columns[s.Field]
	}

	order := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: col}, Desc: s.Descending()},
	}}
	if s.Field != query.FieldTransactionID {
		order.Columns = append(order.Columns, clause.OrderByColumn{Column: clause.Column{Name: "transaction_id"}})
	}
	return order
}
