package services_test

import (
	"fmt"
	"time"

	"retail-sales-api/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

func fakeTransaction(f *gofakeit.Faker, id int64) models.Transaction {
	amount := decimal.NewFromInt(int64(f.Number(100, 9000)))
	return models.Transaction{
		TransactionID:   id,
		Date:            time.Date(2023, time.Month(f.Number(1, 12)), f.Number(1, 28), 15, 4, 5, 0, time.UTC),
		CustomerID:      fmt.Sprintf("CUST-%04d", f.Number(1, 9999)),
		CustomerName:    f.Name(),
		Phone:           f.Phone(),
		Gender:          models.GenderFemale,
		Age:             f.Number(18, 70),
		Region:          f.RandomString([]string{"North", "South", "East", "West"}),
		ProductName:     f.Word(),
		ProductCategory: f.RandomString([]string{"Clothing", "Electronics", "Beauty"}),
		Tags:            models.StringList{"gift", "sale"},
		Quantity:        f.Number(1, 5),
		Amount:          amount,
		FinalAmount:     amount.Mul(decimal.NewFromFloat(0.9)).Round(2),
		PaymentMethod:   "UPI",
		Status:          "Completed",
		DeliveryType:    "Standard",
		StoreLocation:   f.City(),
	}
}

func fakeTransactions(seed uint64, n int) []models.Transaction {
	f := gofakeit.New(seed)
	out := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fakeTransaction(f, int64(i+1)))
	}
	return out
}
