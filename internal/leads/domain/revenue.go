// Package domain provides core business rules for the leads bounded context.
package domain

// EstimatedRevenue returns the projected commission for a lead: 3% of the
// budget scaled by the negotiated discount rate, plus a fixed 60,000 yen
// brokerage fee. The result is exact; no rounding or clamping happens here,
// display layers floor to whole yen or man-yen buckets on their own.
func EstimatedRevenue(budget int64, discountRate float64) float64 {
	return float64(budget)*0.03*discountRate + 60000
}
