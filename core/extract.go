package core

import "math"

// Neutral defaults returned when a spending series is too short to score.
const (
	neutralRisk = 50.0

	// Months spending below this fraction of the mean count as low months.
	lowSpendFraction = 0.2
)

// trendRisk scores the long-run spending direction. A flat or rising
// trend lands near or below 50; a declining slope pushes toward 100.
func trendRisk(spending []float64) float64 {
	if len(spending) < 2 {
		return neutralRisk
	}
	slope := olsSlope(spending)
	m := mean(spending)
	var trendPct float64
	if m != 0 {
		trendPct = slope / m * 100
	}
	return clamp(50-trendPct, 0, 100)
}

// declineRisk compares the last three months against the earlier history.
// With three or fewer months the historical window is all but the last month.
func declineRisk(spending []float64) float64 {
	n := len(spending)
	if n < 2 {
		return neutralRisk
	}

	recentStart := n - 3
	if recentStart < 0 {
		recentStart = 0
	}
	recentAvg := mean(spending[recentStart:])

	var historicalAvg float64
	if n > 3 {
		historicalAvg = mean(spending[:n-3])
	} else {
		historicalAvg = mean(spending[:n-1])
	}

	var declinePct float64
	if historicalAvg != 0 {
		declinePct = (recentAvg - historicalAvg) / historicalAvg * 100
	}
	return clamp(50-declinePct, 0, 100)
}

// inactivityRisk scores the share of dead or near-dead months. A zero
// month also counts as a low month, so it carries 1.5x weight in total.
func inactivityRisk(spending []float64) float64 {
	n := len(spending)
	if n < 2 {
		return neutralRisk
	}

	m := mean(spending)
	lowCutoff := lowSpendFraction * m

	var zeroMonths, lowMonths float64
	for _, v := range spending {
		if v == 0 {
			zeroMonths++
		}
		if v < lowCutoff {
			lowMonths++
		}
	}

	inactivityPct := (zeroMonths + 0.5*lowMonths) / float64(n) * 100
	return clamp(inactivityPct*2, 0, 100)
}

// volatilityRisk scores the coefficient of variation of the series.
// The CV is non-negative, so only the upper bound needs a clamp.
func volatilityRisk(spending []float64) float64 {
	if len(spending) < 2 {
		return 0
	}
	m := mean(spending)
	if m == 0 {
		return 0
	}
	cv := popStdDev(spending) / m * 100
	return math.Min(100, cv)
}
