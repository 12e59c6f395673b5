package core

import (
	"sort"
	"time"

	"github.com/retainly/churnscope/schema"
)

// Accepted transaction date layouts, tried in order.
var transactionDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseTransactionDates extracts the parseable dates from a transaction
// list. Unparseable entries are dropped silently.
func parseTransactionDates(transactions []schema.Transaction) []time.Time {
	dates := make([]time.Time, 0, len(transactions))
	for _, tx := range transactions {
		for _, layout := range transactionDateLayouts {
			if t, err := time.Parse(layout, tx.Date); err == nil {
				dates = append(dates, t)
				break
			}
		}
	}
	return dates
}

// predictChurn estimates when the customer's next purchase becomes
// overdue. It needs at least two parseable transaction dates and at
// least one positive day gap between consecutive purchases; otherwise
// it returns nil, which downstream treats as "no prediction".
//
// The overdue magnitude is discarded: a customer already past the
// predicted date reports zero days until churn.
func predictChurn(transactions []schema.Transaction, now time.Time) *schema.ChurnPrediction {
	dates := parseTransactionDates(transactions)
	if len(dates) < 2 {
		return nil
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		days := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		if days > 0 {
			gaps = append(gaps, float64(days))
		}
	}
	if len(gaps) == 0 {
		return nil
	}

	cycleDays := int(median(gaps))
	lastPurchase := dates[len(dates)-1]
	predicted := lastPurchase.AddDate(0, 0, cycleDays)

	daysUntil := int(predicted.Sub(now).Hours() / 24)
	if daysUntil < 0 {
		daysUntil = 0
	}

	return &schema.ChurnPrediction{
		PredictedDate: predicted,
		DaysUntil:     daysUntil,
		CycleDays:     cycleDays,
		LastPurchase:  lastPurchase,
	}
}
