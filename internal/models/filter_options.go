package models

import "github.com/shopspring/decimal"

// NumericRange is the observed span of a numeric column
type NumericRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FilterOptions lists the distinct values a client can offer as filter choices
type FilterOptions struct {
	Regions           []string     `json:"regions"`
	Genders           []string     `json:"genders"`
	PaymentMethods    []string     `json:"paymentMethods"`
	Statuses          []string     `json:"statuses"`
	ProductCategories []string     `json:"productCategories"`
	DeliveryTypes     []string     `json:"deliveryTypes"`
	StoreLocations    []string     `json:"storeLocations"`
	Tags              []string     `json:"tags"`
	AgeRange          NumericRange `json:"ageRange"`
	AmountRange       NumericRange `json:"amountRange"`
}

// Default ranges reported when the table is empty
var (
	DefaultAgeRange    = NumericRange{Min: decimal.Zero, Max: decimal.NewFromInt(100)}
	DefaultAmountRange = NumericRange{Min: decimal.Zero, Max: decimal.NewFromInt(100000)}
)
