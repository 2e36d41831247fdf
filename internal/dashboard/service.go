// Package dashboard computes the sales metrics snapshot. All aggregation is
// pure and runs per request over the full lead collection; nothing here is
// persisted or memoized.
package dashboard

import (
	"sort"
	"time"

	leaddomain "github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"

	"github.com/google/uuid"
)

// Lead is the aggregation snapshot of one lead, small enough to hold the
// whole collection in memory per request.
type Lead struct {
	ID           uuid.UUID
	Name         string
	Status       string
	Priority     string
	Budget       int64
	DiscountRate float64
	AgentName    string
	UpdatedAt    time.Time
}

func (l Lead) revenue() float64 {
	return leaddomain.EstimatedRevenue(l.Budget, l.DiscountRate)
}

// Metrics is the dashboard card payload.
type Metrics struct {
	CurrentMonthTarget  int64   `json:"currentMonthTarget"`
	CurrentMonthRevenue float64 `json:"currentMonthRevenue"`
	AchievementRate     float64 `json:"achievementRate"`
	MomRevenue          float64 `json:"momRevenue"`

	CurrentMonthForecast float64 `json:"currentMonthForecast"`
	CurrentMonthClosed   float64 `json:"currentMonthClosed"`
	CurrentMonthExpected float64 `json:"currentMonthExpected"`

	YearTotalRevenue float64 `json:"yearTotalRevenue"`
	YearTotalTarget  int64   `json:"yearTotalTarget"`
}

// CalculateMetrics aggregates the lead collection against the current
// year's month targets (keys "1".."12"). Closed revenue buckets by
// updatedAt month; expected pipeline revenue is not time-filtered. The
// previous month of January is December of the prior year.
func CalculateMetrics(leads []Lead, targets map[string]int64, now time.Time) Metrics {
	currentYear, currentMonth, _ := now.Date()
	lastMonth := currentMonth - 1
	lastMonthYear := currentYear
	if currentMonth == time.January {
		lastMonth = time.December
		lastMonthYear = currentYear - 1
	}

	currentMonthTarget := targets[monthKey(currentMonth)]
	var yearTotalTarget int64
	for _, amount := range targets {
		yearTotalTarget += amount
	}

	var (
		currentMonthRevenue  float64
		currentMonthExpected float64
		yearTotalRevenue     float64
		lastMonthRevenue     float64
	)

	for _, lead := range leads {
		value := lead.revenue()
		year, month, _ := lead.UpdatedAt.Date()

		if lead.Status == leaddomain.StatusClosed {
			if year == currentYear {
				yearTotalRevenue += value
			}
			if year == currentYear && month == currentMonth {
				currentMonthRevenue += value
			}
			if year == lastMonthYear && month == lastMonth {
				lastMonthRevenue += value
			}
		}

		if isPipelineStatus(lead.Status) {
			currentMonthExpected += value
		}
	}

	var achievementRate float64
	if currentMonthTarget > 0 {
		achievementRate = currentMonthRevenue / float64(currentMonthTarget) * 100
	}

	var momRevenue float64
	switch {
	case lastMonthRevenue > 0:
		momRevenue = (currentMonthRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	case currentMonthRevenue > 0:
		// Growth from a zero base reads as 100%, not infinity.
		momRevenue = 100
	}

	return Metrics{
		CurrentMonthTarget:   currentMonthTarget,
		CurrentMonthRevenue:  currentMonthRevenue,
		AchievementRate:      achievementRate,
		MomRevenue:           momRevenue,
		CurrentMonthForecast: currentMonthRevenue + currentMonthExpected,
		CurrentMonthClosed:   currentMonthRevenue,
		CurrentMonthExpected: currentMonthExpected,
		YearTotalRevenue:     yearTotalRevenue,
		YearTotalTarget:      yearTotalTarget,
	}
}

// Pipeline chart modes.
const (
	ModeAmount = "amount"
	ModeCount  = "count"
)

// PipelineRow is one agent's bar in the pipeline chart, with one value per
// canonical status.
type PipelineRow struct {
	Name        string  `json:"name"`
	New         float64 `json:"New"`
	Sent        float64 `json:"Sent"`
	Scheduled   float64 `json:"Scheduled"`
	Viewed      float64 `json:"Viewed"`
	Negotiating float64 `json:"Negotiating"`
	Closed      float64 `json:"Closed"`
}

// CalculatePipelineData groups leads by agent name (fallback "Unknown")
// and sums either estimated revenue or a count per canonical status. Leads
// whose status id is no longer canonical are skipped; the column set never
// follows config edits.
func CalculatePipelineData(leads []Lead, mode string) []PipelineRow {
	index := make(map[string]int)
	rows := make([]PipelineRow, 0)

	for _, lead := range leads {
		agent := lead.AgentName
		if agent == "" {
			agent = "Unknown"
		}

		i, ok := index[agent]
		if !ok {
			i = len(rows)
			index[agent] = i
			rows = append(rows, PipelineRow{Name: agent})
		}

		value := 1.0
		if mode == ModeAmount {
			value = lead.revenue()
		}

		switch lead.Status {
		case leaddomain.StatusNew:
			rows[i].New += value
		case leaddomain.StatusSent:
			rows[i].Sent += value
		case leaddomain.StatusScheduled:
			rows[i].Scheduled += value
		case leaddomain.StatusViewed:
			rows[i].Viewed += value
		case leaddomain.StatusNegotiating:
			rows[i].Negotiating += value
		case leaddomain.StatusClosed:
			rows[i].Closed += value
		}
	}

	return rows
}

// Win is one closed deal on the recent wins card.
type Win struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AgentName string    `json:"agentName"`
	Revenue   float64   `json:"revenue"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecentWins returns the five most recently updated closed leads.
func RecentWins(leads []Lead) []Win {
	closed := make([]Lead, 0)
	for _, lead := range leads {
		if lead.Status == leaddomain.StatusClosed {
			closed = append(closed, lead)
		}
	}

	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].UpdatedAt.After(closed[j].UpdatedAt)
	})
	if len(closed) > 5 {
		closed = closed[:5]
	}

	wins := make([]Win, 0, len(closed))
	for _, lead := range closed {
		wins = append(wins, Win{
			ID:        lead.ID,
			Name:      lead.Name,
			AgentName: lead.AgentName,
			Revenue:   lead.revenue(),
			UpdatedAt: lead.UpdatedAt,
		})
	}
	return wins
}

func isPipelineStatus(status string) bool {
	for _, s := range leaddomain.PipelineStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func monthKey(m time.Month) string {
	return [...]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}[int(m)-1]
}
