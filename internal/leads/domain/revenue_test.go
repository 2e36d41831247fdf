package domain

import "testing"

func TestEstimatedRevenue(t *testing.T) {
	tests := []struct {
		name         string
		budget       int64
		discountRate float64
		want         float64
	}{
		{"standard rate", 50_000_000, 1.0, 1_560_000},
		{"discounted", 35_000_000, 0.9, 1_005_000},
		{"zero budget keeps base fee", 0, 1.0, 60_000},
		{"zero discount rate keeps base fee", 80_000_000, 0, 60_000},
		{"small budget", 1_000_000, 1.0, 90_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimatedRevenue(tc.budget, tc.discountRate); got != tc.want {
				t.Errorf("EstimatedRevenue(%d, %v) = %v, want %v", tc.budget, tc.discountRate, got, tc.want)
			}
		})
	}
}
