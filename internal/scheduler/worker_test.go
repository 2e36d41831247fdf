package scheduler

import (
	"strings"
	"testing"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	propertydomain "github.com/Kento03Onodera/pick-re-crm/internal/properties/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestMatchCriteria(t *testing.T) {
	listings := []propertydomain.Property{
		{ID: "p1", Name: "パークコート渋谷ザ・タワー", Address: "東京都渋谷区神南1-1-1", Layout: "2LDK", Price: 150000000},
		{ID: "p2", Name: "シティタワー恵比寿", Address: "東京都渋谷区恵比寿2-2-2", Layout: "1LDK", Price: 120000000},
		{ID: "p3", Name: "ライオンズマンション練馬", Address: "東京都練馬区豊玉北3-3-3", Layout: "3DK", Price: 42000000},
	}

	tests := []struct {
		name     string
		criteria repository.SearchCriteria
		wantIDs  []string
	}{
		{
			name:     "empty criteria matches all",
			criteria: repository.SearchCriteria{},
			wantIDs:  []string{"p1", "p2", "p3"},
		},
		{
			name:     "budget range",
			criteria: repository.SearchCriteria{BudgetMin: int64Ptr(50000000), BudgetMax: int64Ptr(130000000)},
			wantIDs:  []string{"p2"},
		},
		{
			name:     "area substring",
			criteria: repository.SearchCriteria{Areas: []string{"渋谷区"}},
			wantIDs:  []string{"p1", "p2"},
		},
		{
			name:     "layout exact match",
			criteria: repository.SearchCriteria{Layouts: []string{"3DK", "4LDK"}},
			wantIDs:  []string{"p3"},
		},
		{
			name:     "combined filters narrow further",
			criteria: repository.SearchCriteria{Areas: []string{"渋谷区"}, Layouts: []string{"1LDK"}},
			wantIDs:  []string{"p2"},
		},
		{
			name:     "no listing satisfies",
			criteria: repository.SearchCriteria{Areas: []string{"横浜市"}},
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchCriteria(listings, tt.criteria)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.wantIDs))
			}
			for i, p := range got {
				if p.ID != tt.wantIDs[i] {
					t.Errorf("match[%d] = %s, want %s", i, p.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDigestInterval(t *testing.T) {
	tests := []struct {
		frequency string
		want      time.Duration
	}{
		{FrequencyThreeDays, 72 * time.Hour},
		{FrequencyOneWeek, 7 * 24 * time.Hour},
		{FrequencyTwoWeeks, 14 * 24 * time.Hour},
		{"", 7 * 24 * time.Hour},
		{"monthly", 7 * 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := DigestInterval(tt.frequency); got != tt.want {
			t.Errorf("DigestInterval(%q) = %v, want %v", tt.frequency, got, tt.want)
		}
	}
}

func TestDigestHTMLEscapesContent(t *testing.T) {
	lead := repository.Lead{Name: "田中 <太郎>"}
	matches := []propertydomain.Property{
		{Name: "テスト<物件>", Address: "東京都", Layout: "2LDK", Price: 85000000},
	}

	got := digestHTML(lead, matches)
	if strings.Contains(got, "<太郎>") || strings.Contains(got, "<物件>") {
		t.Fatalf("unescaped HTML in digest: %s", got)
	}
	if !strings.Contains(got, "8500万円") {
		t.Errorf("expected price in man-yen units, got: %s", got)
	}
}
