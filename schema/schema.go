// Package schema has configs, models and global variables for all parts of churnscope.
package schema

import "time"

// Transaction is a single purchase record for a customer.
// Only Date is required by the churn-date predictor; the remaining
// fields feed CSV aggregation and synthetic data generation.
type Transaction struct {
	CustomerID string  `json:"customer_id,omitempty"`
	Date       string  `json:"date"`
	Product    string  `json:"product,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	UnitPrice  float64 `json:"unit_price,omitempty"`
	Amount     float64 `json:"total_value,omitempty"`
}

// CustomerHistory is the per-customer input to the risk engine.
// MonthlySpending is ordered oldest to newest with one entry per
// consecutive calendar month; index position stands for month offset.
type CustomerHistory struct {
	CustomerID      string        `json:"customer_id"`
	MonthlySpending []float64     `json:"monthly_spending"`
	AnnualSpending  float64       `json:"annual_spending"`
	Transactions    []Transaction `json:"transactions,omitempty"`
}

// ChurnPrediction estimates when a customer's next purchase is overdue.
// Present on an assessment only when at least two dated transactions exist.
type ChurnPrediction struct {
	PredictedDate time.Time `json:"predicted_churn_date"`
	DaysUntil     int       `json:"days_until_churn"`
	CycleDays     int       `json:"purchase_cycle_days"`
	LastPurchase  time.Time `json:"last_purchase_date"`
}

// RiskAssessment is the full engine output for one customer. It is
// computed fresh on each run and never mutated in place.
type RiskAssessment struct {
	CustomerID     string           `json:"customer_id"`
	TrendRisk      float64          `json:"trend_risk"`
	DeclineRisk    float64          `json:"decline_risk"`
	InactivityRisk float64          `json:"inactivity_risk"`
	VolatilityRisk float64          `json:"volatility_risk"`
	Score          float64          `json:"churn_risk_score"`
	Level          RiskLevel        `json:"risk_level"`
	Prediction     *ChurnPrediction `json:"churn_prediction,omitempty"`
	CLV            float64          `json:"clv"`
	DiscountPct    int              `json:"recommended_discount_pct"`
	DiscountCost   float64          `json:"discount_cost"`
	RetentionROI   float64          `json:"retention_roi"`
	Priority       Priority         `json:"priority"`
	Action         string           `json:"action"`
}

// PortfolioSummary aggregates one analysis run across all customers.
// It is recomputable from the assessment collection, not separately stateful.
type PortfolioSummary struct {
	TotalCustomers  int     `json:"total_customers"`
	HighRiskCount   int     `json:"high_risk_count"`
	MediumRiskCount int     `json:"medium_risk_count"`
	LowRiskCount    int     `json:"low_risk_count"`
	MeanScore       float64 `json:"mean_risk_score"`
	HighRiskCLV     float64 `json:"high_risk_clv"`
}
