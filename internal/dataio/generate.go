package dataio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

// Product catalog for synthetic B2B supplier data.
var sampleProducts = []string{"Chicken Dips", "Cheese Dips", "Drinks", "Sauces", "Frozen Items"}

// sampleStartDate anchors the first generated month.
var sampleStartDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// GenerateSampleTransactions produces a deterministic synthetic
// transaction set with embedded churn patterns. A configurable fraction
// of customers starts tapering off after a random mid-series month,
// which is what the risk engine is supposed to pick up.
func GenerateSampleTransactions(cfg *contract.Config) []schema.Transaction {
	rng := rand.New(rand.NewSource(cfg.Seed))

	customers := make([]string, cfg.SampleCustomers)
	for i := range customers {
		customers[i] = fmt.Sprintf("Customer_%03d", i)
	}

	// Baseline monthly quantity per customer per product.
	baseline := make(map[string]map[string]int, len(customers))
	for _, customer := range customers {
		quantities := make(map[string]int, len(sampleProducts))
		for _, product := range sampleProducts {
			quantities[product] = 5 + rng.Intn(45)
		}
		baseline[customer] = quantities
	}

	churned := make(map[string]bool, len(customers))
	for _, i := range rng.Perm(len(customers))[:int(cfg.SampleChurnRate*float64(len(customers)))] {
		churned[customers[i]] = true
	}

	// Churn starts somewhere past the midpoint so every churned customer
	// still has a healthy early history to decline from.
	churnStartMonth := cfg.SampleMonths/2 + rng.Intn(max(cfg.SampleMonths/3, 1))

	var transactions []schema.Transaction
	for month := 0; month < cfg.SampleMonths; month++ {
		currentDate := sampleStartDate.AddDate(0, 0, 30*month)

		for _, customer := range customers {
			for _, product := range sampleProducts {
				qty := baseline[customer][product] + rng.Intn(10) - 5

				if churned[customer] && month >= churnStartMonth {
					churnProgress := float64(month-churnStartMonth) / float64(cfg.SampleMonths-churnStartMonth)
					reduction := 1 - churnProgress*(0.3+rng.Float64()*0.5)
					qty = int(float64(qty) * reduction)
				}
				if qty < 0 {
					qty = 0
				}

				price := 5 + rng.Float64()*45
				transactions = append(transactions, schema.Transaction{
					CustomerID: customer,
					Date:       currentDate.Format("2006-01-02"),
					Product:    product,
					Quantity:   qty,
					UnitPrice:  round2(price),
					Amount:     round2(float64(qty) * price),
				})
			}
		}
	}

	return transactions
}

// GenerateSampleHistories produces ready-to-score customer histories.
func GenerateSampleHistories(cfg *contract.Config) []schema.CustomerHistory {
	return AggregateTransactions(GenerateSampleTransactions(cfg))
}

// WriteSampleJSON generates a synthetic dataset and writes it as
// customer histories in JSON form.
func WriteSampleJSON(cfg *contract.Config, path string) (int, error) {
	histories := GenerateSampleHistories(cfg)

	data, err := json.MarshalIndent(histories, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode sample histories: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write sample file: %w", err)
	}
	return len(histories), nil
}

// WriteSampleCSV generates a synthetic dataset and writes it as a raw
// transaction CSV, the same shape the loader aggregates.
func WriteSampleCSV(cfg *contract.Config, path string) (int, error) {
	transactions := GenerateSampleTransactions(cfg)

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create sample file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "customer_id", "product", "quantity", "unit_price", "total_value"}); err != nil {
		return 0, err
	}
	for _, tx := range transactions {
		record := []string{
			tx.Date,
			tx.CustomerID,
			tx.Product,
			strconv.Itoa(tx.Quantity),
			strconv.FormatFloat(tx.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}

	return len(transactions), nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
