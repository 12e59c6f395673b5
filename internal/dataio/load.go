// Package dataio loads customer histories from JSON or transaction CSV
// files and generates synthetic datasets for demos and tests.
package dataio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/retainly/churnscope/schema"
)

// LoadCustomerHistories reads customer data from path, dispatching on
// the file extension. JSON files hold CustomerHistory records directly;
// CSV files hold raw transactions that get aggregated into monthly
// spending series.
func LoadCustomerHistories(path string) ([]schema.CustomerHistory, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadHistoriesJSON(path)
	case ".csv":
		return loadHistoriesCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .json or .csv)", filepath.Ext(path))
	}
}

func loadHistoriesJSON(path string) ([]schema.CustomerHistory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var histories []schema.CustomerHistory
	if err := json.Unmarshal(data, &histories); err != nil {
		return nil, fmt.Errorf("failed to parse customer histories from %s: %w", path, err)
	}
	return histories, nil
}

// loadHistoriesCSV aggregates a raw transaction CSV into per-customer
// monthly spending series. Expected columns (by header name): date,
// customer_id, total_value, and optionally product, quantity, unit_price.
func loadHistoriesCSV(path string) ([]schema.CustomerHistory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := readTransactionsCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transactions from %s: %w", path, err)
	}
	return AggregateTransactions(transactions), nil
}

// readTransactionsCSV parses transaction rows, resolving columns by
// header name. Rows with an unparseable date or amount are dropped.
func readTransactionsCSV(r io.Reader) ([]schema.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "customer_id", "total_value"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column %q", required)
		}
	}

	field := func(record []string, name string) string {
		if i, ok := col[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	var transactions []schema.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		amount, err := strconv.ParseFloat(field(record, "total_value"), 64)
		if err != nil {
			continue
		}
		tx := schema.Transaction{
			CustomerID: field(record, "customer_id"),
			Date:       field(record, "date"),
			Product:    field(record, "product"),
			Amount:     amount,
		}
		if qty := field(record, "quantity"); qty != "" {
			tx.Quantity, _ = strconv.Atoi(qty)
		}
		if price := field(record, "unit_price"); price != "" {
			tx.UnitPrice, _ = strconv.ParseFloat(price, 64)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// AggregateTransactions groups transactions into per-customer monthly
// spending series. Each customer's series spans their own first to last
// observed month, with zero entries for months without purchases, so the
// consecutive-month invariant of CustomerHistory holds. Annual spending
// is the sum of the most recent twelve months.
func AggregateTransactions(transactions []schema.Transaction) []schema.CustomerHistory {
	type monthlyTotals struct {
		byMonth map[int]float64
		txs     []schema.Transaction
	}

	perCustomer := make(map[string]*monthlyTotals)
	for _, tx := range transactions {
		t, ok := parseDate(tx.Date)
		if !ok {
			continue
		}
		totals := perCustomer[tx.CustomerID]
		if totals == nil {
			totals = &monthlyTotals{byMonth: make(map[int]float64)}
			perCustomer[tx.CustomerID] = totals
		}
		totals.byMonth[monthIndex(t)] += tx.Amount
		totals.txs = append(totals.txs, tx)
	}

	histories := make([]schema.CustomerHistory, 0, len(perCustomer))
	for customerID, totals := range perCustomer {
		first, last := monthRange(totals.byMonth)

		spending := make([]float64, 0, last-first+1)
		for m := first; m <= last; m++ {
			spending = append(spending, totals.byMonth[m])
		}

		annualStart := 0
		if len(spending) > 12 {
			annualStart = len(spending) - 12
		}
		var annual float64
		for _, v := range spending[annualStart:] {
			annual += v
		}

		histories = append(histories, schema.CustomerHistory{
			CustomerID:      customerID,
			MonthlySpending: spending,
			AnnualSpending:  annual,
			Transactions:    totals.txs,
		})
	}

	sort.Slice(histories, func(i, j int) bool {
		return histories[i].CustomerID < histories[j].CustomerID
	})
	return histories
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthIndex flattens a date into a single month counter.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthRange(byMonth map[int]float64) (first, last int) {
	started := false
	for m := range byMonth {
		if !started {
			first, last = m, m
			started = true
			continue
		}
		if m < first {
			first = m
		}
		if m > last {
			last = m
		}
	}
	return first, last
}
