package services_test

import (
	"testing"
	"time"

	"retail-sales-api/internal/services"

	"github.com/stretchr/testify/suite"
)

type TransactionGeneratorTestSuite struct {
	suite.Suite
	generator services.TransactionGeneratorInterface
	start     time.Time
	end       time.Time
}

func TestTransactionGeneratorSuite(t *testing.T) {
	suite.Run(t, new(TransactionGeneratorTestSuite))
}

func (s *TransactionGeneratorTestSuite) SetupTest() {
	s.generator = services.NewTransactionGenerator(42)
	s.start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s.end = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (s *TransactionGeneratorTestSuite) TestGenerate_ProducesValidRecords() {
	records := s.generator.Generate(100, 500, s.start, s.end)

	s.Len(records, 500)
	for i, t := range records {
		s.NoError(t.Validate(), "record %d", i)
		s.Equal(int64(100+i), t.TransactionID)
		s.False(t.Date.Before(s.start))
		s.True(t.Date.Before(s.end))
		s.True(t.FinalAmount.LessThanOrEqual(t.Amount))
		s.GreaterOrEqual(t.Quantity, 1)
		s.NotEmpty(t.Region)
		s.NotEmpty(t.StoreLocation)
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerate_Variety() {
	records := s.generator.Generate(1, 1000, s.start, s.end)

	regions := map[string]bool{}
	statuses := map[string]bool{}
	payments := map[string]bool{}
	for _, t := range records {
		regions[t.Region] = true
		statuses[t.Status] = true
		payments[t.PaymentMethod] = true
	}

	s.GreaterOrEqual(len(regions), 4)
	s.GreaterOrEqual(len(statuses), 3)
	s.GreaterOrEqual(len(payments), 4)
}

func (s *TransactionGeneratorTestSuite) TestGenerate_DeterministicForSeed() {
	a := services.NewTransactionGenerator(7).Generate(1, 20, s.start, s.end)
	b := services.NewTransactionGenerator(7).Generate(1, 20, s.start, s.end)

	s.Equal(a, b)
}

func (s *TransactionGeneratorTestSuite) TestGenerateTags_DistinctAndBounded() {
	for i := 0; i < 200; i++ {
		tags := s.generator.GenerateTags()
		s.GreaterOrEqual(len(tags), 1)
		s.LessOrEqual(len(tags), 3)
		s.Equal(tags.Normalize(), tags)
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateTimestamp_StoreHours() {
	for i := 0; i < 200; i++ {
		ts := s.generator.GenerateTimestamp(s.start, s.end)
		s.GreaterOrEqual(ts.Hour(), 9)
		s.Less(ts.Hour(), 22)
		s.Equal(time.UTC, ts.Location())
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateTimestamp_EmptyRange() {
	ts := s.generator.GenerateTimestamp(s.start, s.start)

	s.Equal(s.start, ts)
}
