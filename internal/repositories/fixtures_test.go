package repositories

import (
	"fmt"
	"time"

	"retail-sales-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

var (
	fixtureRegions    = []string{"North", "South", "East", "West", "Central"}
	fixtureGenders    = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	fixturePayments   = []string{"UPI", "Cash", "Credit Card", "Debit Card", "Wallet"}
	fixtureStatuses   = []string{"Completed", "Pending", "Cancelled", "Returned"}
	fixtureCategories = []string{"Electronics", "Clothing", "Beauty", "Home", "Sports"}
	fixtureTags       = []string{"sale", "new", "gift", "premium", "eco", "limited"}
)

// fakeTransactions returns n deterministic records numbered from firstID
func fakeTransactions(seed int64, firstID int64, n int) []models.Transaction {
	f := gofakeit.New(seed)
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	out := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		qty := f.Number(1, 10)
		price := decimal.NewFromInt(int64(f.Number(10, 5000)))
		discount := decimal.NewFromInt(int64(f.Number(0, 30)))
		amount := price.Mul(decimal.NewFromInt(int64(qty)))
		final := amount.Sub(amount.Mul(discount).Div(decimal.NewFromInt(100))).Round(2)

		var tags models.StringList
		for j := 0; j < f.Number(0, 3); j++ {
			tags = append(tags, f.RandomString(fixtureTags))
		}

		day := f.DateRange(start, end)
		out = append(out, models.Transaction{
			TransactionID:      firstID + int64(i),
			Date:               time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			CustomerID:         fmt.Sprintf("CUST-%05d", f.Number(1, 99999)),
			CustomerName:       f.Name(),
			Phone:              f.Phone(),
			Gender:             f.RandomString(fixtureGenders),
			Age:                f.Number(18, 70),
			Region:             f.RandomString(fixtureRegions),
			CustomerType:       f.RandomString([]string{"New", "Returning", "Loyal"}),
			ProductID:          fmt.Sprintf("PROD-%04d", f.Number(1, 9999)),
			ProductName:        f.Word() + " " + f.Word(),
			Brand:              f.Company(),
			ProductCategory:    f.RandomString(fixtureCategories),
			Tags:               tags.Normalize(),
			Quantity:           qty,
			PricePerUnit:       price,
			DiscountPercentage: discount,
			Amount:             amount,
			FinalAmount:        final,
			PaymentMethod:      f.RandomString(fixturePayments),
			Status:             f.RandomString(fixtureStatuses),
			DeliveryType:       f.RandomString([]string{"Standard", "Express", "Store Pickup"}),
			StoreID:            fmt.Sprintf("ST-%02d", f.Number(1, 20)),
			StoreLocation:      f.City(),
			EmployeeID:         fmt.Sprintf("EMP-%03d", f.Number(1, 200)),
			EmployeeName:       f.Name(),
		})
	}
	return out
}
