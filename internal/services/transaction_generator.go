package services

import (
	"fmt"
	"math/rand"
	"time"

	"retail-sales-api/internal/models"

	"github.com/shopspring/decimal"
)

// ProductInfo describes a catalogue item the generator sells
type ProductInfo struct {
	ID       string
	Name     string
	Brand    string
	Category string
	MinPrice float64
	MaxPrice float64
}

type storeInfo struct {
	ID       string
	Location string
	Region   string
}

type transactionGenerator struct {
	productPool []ProductInfo
	stores      []storeInfo
	rng         *rand.Rand
}

const (
	businessHoursStart = 9
	businessHoursEnd   = 22
	maxQuantity        = 5
	minCustomerAge     = 18
	maxCustomerAge     = 65
)

var (
	generatorTags     = []string{"organic", "eco-friendly", "gift", "seasonal", "wireless", "fashion", "premium", "unisex", "smart", "casual"}
	generatorFirst    = []string{"Aarav", "Neha", "Rohan", "Priya", "Kabir", "Isha", "Vikram", "Ananya", "Arjun", "Meera", "Sahil", "Diya"}
	generatorLast     = []string{"Sharma", "Iyer", "Mehta", "Nair", "Reddy", "Kapoor", "Das", "Joshi", "Singh", "Rao"}
	deliveryTypes     = []string{"Standard", "Express", "Store Pickup"}
	customerTypes     = []string{"New", "Returning", "Loyal"}
	discountSteps     = []float64{0, 0, 0, 5, 10, 15, 20, 25}
	employeeNames     = []string{"Ravi Kumar", "Sneha Pillai", "Amit Verma", "Pooja Bhat", "Karan Malhotra"}
	generatorGender   = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	generatorPayments = []struct {
		method string
		weight float64
	}{
		{"UPI", 0.30},
		{"Credit Card", 0.25},
		{"Debit Card", 0.20},
		{"Cash", 0.15},
		{"Net Banking", 0.05},
		{"Wallet", 0.05},
	}
)

// NewTransactionGenerator creates a generator; a zero seed uses the clock
func NewTransactionGenerator(seed int64) TransactionGeneratorInterface {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &transactionGenerator{
		productPool: initializeProductPool(),
		stores:      initializeStores(),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func initializeProductPool() []ProductInfo {
	return []ProductInfo{
		// Clothing
		{"PROD-0001", "Linen Shirt", "Urbane", "Clothing", 799, 1999},
		{"PROD-0002", "Denim Jacket", "Indigo Co", "Clothing", 1499, 3999},
		{"PROD-0003", "Cotton Kurta", "Desi Loom", "Clothing", 599, 1799},
		{"PROD-0004", "Running Shorts", "Stride", "Clothing", 399, 999},

		// Electronics
		{"PROD-0005", "Noise Cancelling Headphones", "Sonic", "Electronics", 4999, 14999},
		{"PROD-0006", "Smart Watch", "Pulse", "Electronics", 2999, 19999},
		{"PROD-0007", "Bluetooth Speaker", "Sonic", "Electronics", 1499, 6999},
		{"PROD-0008", "Power Bank", "Volt", "Electronics", 799, 2499},

		// Beauty
		{"PROD-0009", "Face Serum", "Glow", "Beauty", 499, 1499},
		{"PROD-0010", "Herbal Shampoo", "Vana", "Beauty", 199, 699},
		{"PROD-0011", "Matte Lipstick", "Rouge", "Beauty", 299, 999},

		// Home
		{"PROD-0012", "Ceramic Dinner Set", "Kiln", "Home", 1999, 5999},
		{"PROD-0013", "Scented Candle", "Aroma", "Home", 249, 899},
		{"PROD-0014", "Cotton Bedsheet", "Desi Loom", "Home", 899, 2499},

		// Sports
		{"PROD-0015", "Yoga Mat", "Stride", "Sports", 499, 1999},
		{"PROD-0016", "Cricket Bat", "Willow", "Sports", 1299, 8999},
	}
}

func initializeStores() []storeInfo {
	return []storeInfo{
		{"ST-01", "Delhi", "North"},
		{"ST-02", "Chandigarh", "North"},
		{"ST-03", "Chennai", "South"},
		{"ST-04", "Bengaluru", "South"},
		{"ST-05", "Mumbai", "West"},
		{"ST-06", "Ahmedabad", "West"},
		{"ST-07", "Kolkata", "East"},
		{"ST-08", "Bhubaneswar", "East"},
		{"ST-09", "Nagpur", "Central"},
	}
}

// Generate returns count records with consecutive transaction ids from firstID
func (g *transactionGenerator) Generate(firstID int64, count int, startDate, endDate time.Time) []models.Transaction {
	transactions := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		transactions = append(transactions, g.generateOne(firstID+int64(i), startDate, endDate))
	}
	return transactions
}

func (g *transactionGenerator) generateOne(id int64, startDate, endDate time.Time) models.Transaction {
	product := g.productPool[g.rng.Intn(len(g.productPool))]
	store := g.stores[g.rng.Intn(len(g.stores))]
	employee := g.rng.Intn(len(employeeNames))
	customer := 1 + g.rng.Intn(1000)

	quantity := 1 + g.rng.Intn(maxQuantity)
	price := decimal.NewFromFloat(product.MinPrice + g.rng.Float64()*(product.MaxPrice-product.MinPrice)).Round(2)
	discount := decimal.NewFromFloat(discountSteps[g.rng.Intn(len(discountSteps))])
	amount := price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	final := amount.Sub(amount.Mul(discount).Div(decimal.NewFromInt(100))).Round(2)

	return models.Transaction{
		TransactionID:      id,
		Date:               g.GenerateTimestamp(startDate, endDate),
		CustomerID:         fmt.Sprintf("CUST-%04d", customer),
		CustomerName:       g.pick(generatorFirst) + " " + g.pick(generatorLast),
		Phone:              fmt.Sprintf("9%09d", g.rng.Intn(1_000_000_000)),
		Gender:             g.pick(generatorGender),
		Age:                minCustomerAge + g.rng.Intn(maxCustomerAge-minCustomerAge+1),
		Region:             store.Region,
		CustomerType:       g.pick(customerTypes),
		ProductID:          product.ID,
		ProductName:        product.Name,
		Brand:              product.Brand,
		ProductCategory:    product.Category,
		Tags:               g.GenerateTags(),
		Quantity:           quantity,
		PricePerUnit:       price,
		DiscountPercentage: discount,
		Amount:             amount,
		FinalAmount:        final,
		PaymentMethod:      g.generatePaymentMethod(),
		Status:             g.generateStatus(),
		DeliveryType:       g.pick(deliveryTypes),
		StoreID:            store.ID,
		StoreLocation:      store.Location,
		EmployeeID:         fmt.Sprintf("EMP-%02d", employee+1),
		EmployeeName:       employeeNames[employee],
	}
}

func (g *transactionGenerator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// GenerateTags returns one to three distinct tags
func (g *transactionGenerator) GenerateTags() models.StringList {
	n := 1 + g.rng.Intn(3)
	picked := g.rng.Perm(len(generatorTags))[:n]

	tags := make(models.StringList, 0, n)
	for _, i := range picked {
		tags = append(tags, generatorTags[i])
	}
	return tags.Normalize()
}

// generatePaymentMethod picks a method with a weighted distribution
func (g *transactionGenerator) generatePaymentMethod() string {
	roll := g.rng.Float64()
	var cumulative float64
	for _, p := range generatorPayments {
		cumulative += p.weight
		if roll < cumulative {
			return p.method
		}
	}
	return generatorPayments[0].method
}

// generateStatus: 80% completed, 10% pending, 6% cancelled, 4% returned
func (g *transactionGenerator) generateStatus() string {
	roll := g.rng.Float64()

	switch {
	case roll < 0.80:
		return "Completed"
	case roll < 0.90:
		return "Pending"
	case roll < 0.96:
		return "Cancelled"
	default:
		return "Returned"
	}
}

// GenerateTimestamp generates a random timestamp within the date range, during store hours
func (g *transactionGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	diff := endDate.Sub(startDate)
	if diff <= 0 {
		return startDate.UTC()
	}
	timestamp := startDate.Add(time.Duration(g.rng.Int63n(int64(diff))))

	hour := businessHoursStart + g.rng.Intn(businessHoursEnd-businessHoursStart)
	minute := g.rng.Intn(60)
	second := g.rng.Intn(60)

	return time.Date(
		timestamp.Year(),
		timestamp.Month(),
		timestamp.Day(),
		hour,
		minute,
		second,
		0,
		time.UTC,
	)
}
