package query

import "time"

// Field is a logical transaction attribute addressed by predicates and sorts.
// Storage layers map fields to their own column names.
type Field string

const (
	FieldTransactionID   Field = "transactionID"
	FieldDate            Field = "date"
	FieldCustomerID      Field = "customerID"
	FieldCustomerName    Field = "customerName"
	FieldPhone           Field = "phone"
	FieldGender          Field = "gender"
	FieldAge             Field = "age"
	FieldRegion          Field = "region"
	FieldProductName     Field = "productName"
	FieldProductCategory Field = "productCategory"
	FieldTags            Field = "tags"
	FieldQuantity        Field = "quantity"
	FieldAmount          Field = "amount"
	FieldFinalAmount     Field = "finalAmount"
	FieldPaymentMethod   Field = "paymentMethod"
	FieldStatus          Field = "status"
	FieldDeliveryType    Field = "deliveryType"
	FieldStoreLocation   Field = "storeLocation"
)

// KeywordFields are searched by the free-text keyword, in this order
var KeywordFields = []Field{
	FieldCustomerName,
	FieldPhone,
	FieldProductName,
	FieldCustomerID,
}

// CategoricalField binds a multi-select request parameter to the field it restricts
type CategoricalField struct {
	Param string
	Field Field
}

// CategoricalFields lists every multi-select filter in compile order
var CategoricalFields = []CategoricalField{
	{Param: "region", Field: FieldRegion},
	{Param: "gender", Field: FieldGender},
	{Param: "paymentMethod", Field: FieldPaymentMethod},
	{Param: "status", Field: FieldStatus},
	{Param: "productCategory", Field: FieldProductCategory},
	{Param: "deliveryType", Field: FieldDeliveryType},
	{Param: "storeLocation", Field: FieldStoreLocation},
}

// RangeField binds a min/max parameter pair to a numeric field
type RangeField struct {
	MinParam string
	MaxParam string
	Field    Field
}

// RangeFields lists every numeric range filter in compile order
var RangeFields = []RangeField{
	{MinParam: "minAge", MaxParam: "maxAge", Field: FieldAge},
	{MinParam: "minAmount", MaxParam: "maxAmount", Field: FieldAmount},
	{MinParam: "minFinalAmount", MaxParam: "maxFinalAmount", Field: FieldFinalAmount},
}

// Range is an inclusive numeric interval; a nil bound leaves that side open
type Range struct {
	Min *float64
	Max *float64
}

// IsZero reports whether neither bound is set
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// DateRange is an inclusive time interval; a nil bound leaves that side open
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Filter is the normalized, typed form of one request's filter parameters.
// It is built once per request and never mutated afterwards.
type Filter struct {
	Keyword     string
	Categorical map[Field][]string
	Tags        []string
	Ranges      map[Field]Range
	Dates       DateRange
}

// IsEmpty reports whether no filter is active
func (f Filter) IsEmpty() bool {
	if f.Keyword != "" || len(f.Tags) > 0 || !f.Dates.IsZero() {
		return false
	}
	for _, set := range f.Categorical {
		if len(set) > 0 {
			return false
		}
	}
	for _, r := range f.Ranges {
		if !r.IsZero() {
			return false
		}
	}
	return true
}
