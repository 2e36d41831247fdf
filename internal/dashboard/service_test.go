package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func thisMonth(day int) time.Time {
	return time.Date(2025, time.June, day, 10, 0, 0, 0, time.UTC)
}

func lastMonth(day int) time.Time {
	return time.Date(2025, time.May, day, 10, 0, 0, 0, time.UTC)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	got := CalculateMetrics(nil, map[string]int64{}, testNow)

	if got != (Metrics{}) {
		t.Errorf("empty input must produce all-zero metrics, got %+v", got)
	}
}

func TestCalculateMetricsCurrentMonthRevenue(t *testing.T) {
	leads := []Lead{
		{Status: "Closed", Budget: 50_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(3)},
		{Status: "Closed", Budget: 30_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(10)},
	}

	got := CalculateMetrics(leads, map[string]int64{}, testNow)
	if got.CurrentMonthRevenue != 2_520_000 {
		t.Errorf("currentMonthRevenue = %v, want 2520000", got.CurrentMonthRevenue)
	}
	if got.CurrentMonthClosed != got.CurrentMonthRevenue {
		t.Errorf("currentMonthClosed must alias currentMonthRevenue")
	}
	if got.YearTotalRevenue != 2_520_000 {
		t.Errorf("yearTotalRevenue = %v, want 2520000", got.YearTotalRevenue)
	}
}

func TestCalculateMetricsTargets(t *testing.T) {
	targets := map[string]int64{"6": 3_000_000, "7": 1_000_000, "1": 2_000_000}
	leads := []Lead{
		{Status: "Closed", Budget: 50_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(3)},
	}

	got := CalculateMetrics(leads, targets, testNow)
	if got.CurrentMonthTarget != 3_000_000 {
		t.Errorf("currentMonthTarget = %d, want 3000000", got.CurrentMonthTarget)
	}
	if got.YearTotalTarget != 6_000_000 {
		t.Errorf("yearTotalTarget = %d, want 6000000", got.YearTotalTarget)
	}
	// 1,560,000 / 3,000,000 * 100
	if got.AchievementRate != 52 {
		t.Errorf("achievementRate = %v, want 52", got.AchievementRate)
	}
}

func TestCalculateMetricsAchievementRateZeroTarget(t *testing.T) {
	leads := []Lead{
		{Status: "Closed", Budget: 50_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(3)},
	}

	got := CalculateMetrics(leads, map[string]int64{}, testNow)
	if got.AchievementRate != 0 {
		t.Errorf("achievementRate with no target = %v, want 0", got.AchievementRate)
	}
}

func TestCalculateMetricsMomRevenue(t *testing.T) {
	tests := []struct {
		name  string
		leads []Lead
		want  float64
	}{
		{
			name: "growth from zero base caps at 100",
			leads: []Lead{
				{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(1)},
			},
			want: 100,
		},
		{
			name: "both months zero",
			leads: []Lead{
				{Status: "New", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(1)},
			},
			want: 0,
		},
		{
			name: "doubled revenue",
			leads: []Lead{
				{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: lastMonth(20)},
				{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(2)},
				{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(9)},
			},
			want: 100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateMetrics(tc.leads, map[string]int64{}, testNow)
			if got.MomRevenue != tc.want {
				t.Errorf("momRevenue = %v, want %v", got.MomRevenue, tc.want)
			}
		})
	}
}

func TestCalculateMetricsYearRollover(t *testing.T) {
	january := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	leads := []Lead{
		{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)},
		{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: january},
	}

	got := CalculateMetrics(leads, map[string]int64{}, january)
	// Last month's revenue equals this month's, so growth is 0%.
	if got.MomRevenue != 0 {
		t.Errorf("momRevenue across year boundary = %v, want 0", got.MomRevenue)
	}
	// The December deal belongs to the prior year's total.
	if got.YearTotalRevenue != 360_000 {
		t.Errorf("yearTotalRevenue = %v, want 360000", got.YearTotalRevenue)
	}
}

func TestCalculateMetricsExpectedNotTimeFiltered(t *testing.T) {
	leads := []Lead{
		{Status: "Negotiating", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: lastMonth(1)},
		{Status: "Scheduled", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(1)},
		{Status: "Viewed", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{Status: "New", Budget: 10_000_000, DiscountRate: 1.0, UpdatedAt: thisMonth(1)},
	}

	got := CalculateMetrics(leads, map[string]int64{}, testNow)
	// Three pipeline leads at 360,000 each, regardless of updatedAt.
	if got.CurrentMonthExpected != 1_080_000 {
		t.Errorf("currentMonthExpected = %v, want 1080000", got.CurrentMonthExpected)
	}
	if got.CurrentMonthForecast != got.CurrentMonthClosed+got.CurrentMonthExpected {
		t.Errorf("forecast must equal closed + expected")
	}
}

func TestCalculatePipelineData(t *testing.T) {
	leads := []Lead{
		{Status: "New", Budget: 10_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント", UpdatedAt: thisMonth(1)},
		{Status: "Closed", Budget: 10_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント", UpdatedAt: thisMonth(2)},
		{Status: "New", Budget: 20_000_000, DiscountRate: 1.0, AgentName: "", UpdatedAt: thisMonth(3)},
		{Status: "Archived", Budget: 30_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント", UpdatedAt: thisMonth(4)},
	}

	rows := CalculatePipelineData(leads, ModeCount)
	if len(rows) != 2 {
		t.Fatalf("expected 2 agent rows, got %d", len(rows))
	}
	if rows[0].Name != "佐藤 エージェント" || rows[0].New != 1 || rows[0].Closed != 1 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Name != "Unknown" || rows[1].New != 1 {
		t.Errorf("missing agent name must group under Unknown: %+v", rows[1])
	}
	// The unknown "Archived" status contributes to no column.
	total := rows[0].New + rows[0].Sent + rows[0].Scheduled + rows[0].Viewed + rows[0].Negotiating + rows[0].Closed
	if total != 2 {
		t.Errorf("non-canonical status leaked into the chart: %+v", rows[0])
	}

	amounts := CalculatePipelineData(leads[:1], ModeAmount)
	if amounts[0].New != 360_000 {
		t.Errorf("amount mode must sum estimated revenue, got %v", amounts[0].New)
	}
}

func TestRecentWins(t *testing.T) {
	leads := make([]Lead, 0, 8)
	for day := 1; day <= 7; day++ {
		leads = append(leads, Lead{
			ID:           uuid.New(),
			Name:         "成約リード",
			Status:       "Closed",
			Budget:       10_000_000,
			DiscountRate: 1.0,
			UpdatedAt:    thisMonth(day),
		})
	}
	leads = append(leads, Lead{ID: uuid.New(), Name: "商談中", Status: "Negotiating", UpdatedAt: thisMonth(30)})

	wins := RecentWins(leads)
	if len(wins) != 5 {
		t.Fatalf("expected at most 5 wins, got %d", len(wins))
	}
	for i := 1; i < len(wins); i++ {
		if wins[i].UpdatedAt.After(wins[i-1].UpdatedAt) {
			t.Errorf("wins not sorted by updatedAt descending at %d", i)
		}
	}
	if wins[0].UpdatedAt != thisMonth(7) {
		t.Errorf("newest win first, got %v", wins[0].UpdatedAt)
	}
	for _, w := range wins {
		if w.Name != "成約リード" {
			t.Errorf("non-closed lead leaked into wins: %+v", w)
		}
	}
}
