package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

var (
	ErrInvalidTransactionID = errors.New("transaction ID must be positive")
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidAmount        = errors.New("transaction amounts must not be negative")
	ErrInvalidQuantity      = errors.New("quantity must not be negative")
)

// Transaction is one retail sale record. Records are loaded in bulk and are
// read-only for the API.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	TransactionID int64     `gorm:"not null;uniqueIndex" json:"transactionID"`
	Date          time.Time `gorm:"not null;index" json:"date"`

	CustomerID   string `gorm:"type:varchar(50);not null" json:"customerID"`
	CustomerName string `gorm:"type:varchar(255);not null" json:"customerName"`
	Phone        string `gorm:"type:varchar(50);not null;index" json:"phone"`
	Gender       string `gorm:"type:varchar(20);not null" json:"gender"`
	Age          int    `gorm:"not null" json:"age"`
	Region       string `gorm:"type:varchar(100);not null;index" json:"region"`
	CustomerType string `gorm:"type:varchar(50);not null" json:"customerType"`

	ProductID       string     `gorm:"type:varchar(50);not null" json:"productID"`
	ProductName     string     `gorm:"type:varchar(255);not null" json:"productName"`
	Brand           string     `gorm:"type:varchar(100);not null" json:"brand"`
	ProductCategory string     `gorm:"type:varchar(100);not null;index" json:"productCategory"`
	Tags            StringList `gorm:"type:text" json:"tags"`

	Quantity           int             `gorm:"not null" json:"quantity"`
	PricePerUnit       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerUnit"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discountPercentage"`
	Amount             decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	FinalAmount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"finalAmount"`

	PaymentMethod string `gorm:"type:varchar(50);not null;index" json:"paymentMethod"`
	Status        string `gorm:"type:varchar(50);not null;index" json:"status"`
	DeliveryType  string `gorm:"type:varchar(50);not null" json:"deliveryType"`
	StoreID       string `gorm:"type:varchar(50);not null" json:"storeID"`
	StoreLocation string `gorm:"type:varchar(100);not null" json:"storeLocation"`
	EmployeeID    string `gorm:"type:varchar(50);not null" json:"employeeID"`
	EmployeeName  string `gorm:"type:varchar(255);not null" json:"employeeName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave normalizes the record before it is written
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Date = t.Date.UTC()
	t.Tags = t.Tags.Normalize()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.TransactionID <= 0 {
		return ErrInvalidTransactionID
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	if t.CustomerID == "" || t.CustomerName == "" {
		return errors.New("customer ID and name are required")
	}

	if !IsValidGender(t.Gender) {
		return ErrInvalidGender
	}

	if t.Quantity < 0 {
		return ErrInvalidQuantity
	}

	if t.Amount.IsNegative() || t.FinalAmount.IsNegative() || t.PricePerUnit.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// Discount returns the absolute discount applied to the sale
func (t *Transaction) Discount() decimal.Decimal {
	return t.Amount.Sub(t.FinalAmount)
}

// FormattedDate returns the sale date as DD-MM-YYYY
func (t *Transaction) FormattedDate() string {
	return t.Date.Format("02-01-2006")
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidGender checks if the gender value is one of the accepted values
func IsValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
