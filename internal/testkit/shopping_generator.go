package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"time"

	"datasight/domain/dataset"
)

// ShoppingGeneratorConfig configures the shopping data generator
type ShoppingGeneratorConfig struct {
	Orders      int       `json:"orders"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MissingRate float64   `json:"missing_rate"` // share of numeric cells left blank
	Seed        int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		Orders:    200,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		Seed:      42,
	}
}

// ShoppingHeaders are the columns of a generated orders table
var ShoppingHeaders = []string{
	"Order Date", "Order ID", "Country", "Channel", "Device",
	"Payment Method", "Quantity", "Unit Price", "Revenue", "Expedited",
}

// ShoppingDataGenerator generates a realistic e-commerce orders table. The
// same config always yields the same table.
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the orders table, sorted by order date
func (g *ShoppingDataGenerator) Generate() dataset.Dataset {
	dates := make([]time.Time, g.config.Orders)
	for i := range dates {
		dates[i] = g.randomTimeInRange(g.config.StartDate, g.config.EndDate)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([][]any, 0, g.config.Orders)
	for i, at := range dates {
		quantity := 1 + g.rng.Intn(5)
		price := math.Round((5+g.rng.Float64()*95)*100) / 100
		revenue := math.Round(float64(quantity)*price*100) / 100

		row := []any{
			at.Format("2006-01-02"),
			fmt.Sprintf("order_%05d", i+1),
			g.randomCountry(),
			g.weighted([]string{"organic", "paid_search", "social", "email", "direct"}, []float64{0.4, 0.3, 0.15, 0.1, 0.05}),
			g.weighted([]string{"mobile", "desktop", "tablet"}, []float64{0.6, 0.35, 0.05}),
			g.weighted([]string{"credit_card", "debit_card", "paypal", "apple_pay", "bank_transfer"}, []float64{0.5, 0.2, 0.15, 0.1, 0.05}),
			g.maybeMissing(float64(quantity)),
			g.maybeMissing(price),
			g.maybeMissing(revenue),
			g.rng.Float64() < 0.2,
		}
		rows = append(rows, row)
	}

	headers := make([]string, len(ShoppingHeaders))
	copy(headers, ShoppingHeaders)
	return dataset.New(headers, rows)
}

// WriteCSV writes ds as CSV with a header row
func WriteCSV(w io.Writer, ds dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Headers); err != nil {
		return err
	}
	record := make([]string, ds.ColumnCount())
	for _, row := range ds.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = dataset.ToString(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (g *ShoppingDataGenerator) maybeMissing(v float64) any {
	if g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate {
		return nil
	}
	return v
}

// Helper methods for random value generation

func (g *ShoppingDataGenerator) randomTimeInRange(start, end time.Time) time.Time {
	if start.After(end) {
		start, end = end, start
	}
	duration := end.Sub(start)
	if duration <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(duration))))
}

func (g *ShoppingDataGenerator) randomCountry() string {
	countries := []string{"US", "CA", "GB", "DE", "FR", "AU", "JP"}
	return countries[g.rng.Intn(len(countries))]
}

func (g *ShoppingDataGenerator) weighted(values []string, weights []float64) string {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return values[i]
		}
	}
	return values[0]
}
