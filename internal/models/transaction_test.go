package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() Transaction {
	return Transaction{
		TransactionID:   1001,
		Date:            time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC),
		CustomerID:      "CUST-001",
		CustomerName:    "Neha Sharma",
		Phone:           "9876543210",
		Gender:          GenderFemale,
		Age:             31,
		Region:          "North",
		CustomerType:    "Regular",
		ProductID:       "PROD-010",
		ProductName:     "Running Shoes",
		Brand:           "Stride",
		ProductCategory: "Footwear",
		Tags:            StringList{"sports", "sale"},
		Quantity:        2,
		PricePerUnit:    decimal.NewFromFloat(1250.00),
		Amount:          decimal.NewFromFloat(2500.00),
		FinalAmount:     decimal.NewFromFloat(2250.00),
		PaymentMethod:   "UPI",
		Status:          "Completed",
		DeliveryType:    "Standard",
		StoreID:         "ST-01",
		StoreLocation:   "Delhi",
		EmployeeID:      "EMP-07",
		EmployeeName:    "Ravi Kumar",
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
		errMsg  string
	}{
		{
			name:   "valid transaction",
			mutate: func(*Transaction) {},
		},
		{
			name:    "missing transaction ID",
			mutate:  func(tx *Transaction) { tx.TransactionID = 0 },
			wantErr: ErrInvalidTransactionID,
		},
		{
			name:   "missing date",
			mutate: func(tx *Transaction) { tx.Date = time.Time{} },
			errMsg: "transaction date is required",
		},
		{
			name:   "missing customer name",
			mutate: func(tx *Transaction) { tx.CustomerName = "" },
			errMsg: "customer ID and name are required",
		},
		{
			name:    "invalid gender",
			mutate:  func(tx *Transaction) { tx.Gender = "unknown" },
			wantErr: ErrInvalidGender,
		},
		{
			name:    "negative quantity",
			mutate:  func(tx *Transaction) { tx.Quantity = -1 },
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative final amount",
			mutate:  func(tx *Transaction) { tx.FinalAmount = decimal.NewFromInt(-5) },
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			err := tx.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_BeforeSaveNormalizes(t *testing.T) {
	tx := validTransaction()
	ist := time.FixedZone("IST", 5*3600+1800)
	tx.Date = time.Date(2023, 3, 14, 10, 0, 0, 0, ist)
	tx.Tags = StringList{" sale ", "sale", "", "gift"}

	require.NoError(t, tx.BeforeSave(nil))

	assert.Equal(t, time.UTC, tx.Date.Location())
	assert.Equal(t, 4, tx.Date.Hour())
	assert.Equal(t, StringList{"sale", "gift"}, tx.Tags)
}

func TestTransaction_Helpers(t *testing.T) {
	tx := validTransaction()

	assert.True(t, tx.Discount().Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "14-03-2023", tx.FormattedDate())
	assert.Equal(t, "transactions", tx.TableName())
}

func TestTransaction_JSONFieldNames(t *testing.T) {
	tx := validTransaction()
	tx.ID = 42

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, float64(1001), out["transactionID"])
	assert.Equal(t, "Neha Sharma", out["customerName"])
	assert.Equal(t, []interface{}{"sports", "sale"}, out["tags"])
	assert.NotContains(t, out, "ID")
}

func TestIsValidGender(t *testing.T) {
	assert.True(t, IsValidGender(GenderMale))
	assert.True(t, IsValidGender(GenderFemale))
	assert.True(t, IsValidGender(GenderOther))
	assert.False(t, IsValidGender("male"))
	assert.False(t, IsValidGender(""))
}
