package domain

import "testing"

func TestResolveDropTarget(t *testing.T) {
	columns := []string{StatusNew, StatusSent, StatusScheduled, StatusViewed, StatusNegotiating, StatusClosed}

	tests := []struct {
		name          string
		overID        string
		overLeadGroup string
		want          string
		wantOK        bool
	}{
		{"dropped on a column", StatusViewed, "", StatusViewed, true},
		{"dropped on a card", "lead-123", StatusNegotiating, StatusNegotiating, true},
		{"card group wins only when over id is not a column", StatusSent, StatusClosed, StatusSent, true},
		{"unknown target with no group", "lead-999", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveDropTarget(columns, tc.overID, tc.overLeadGroup)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ResolveDropTarget(%q, %q) = (%q, %v), want (%q, %v)",
					tc.overID, tc.overLeadGroup, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestIsKnownGroupBy(t *testing.T) {
	if !IsKnownGroupBy(GroupByStatus) || !IsKnownGroupBy(GroupByPriority) {
		t.Fatal("canonical group modes must be accepted")
	}
	if IsKnownGroupBy("agent") {
		t.Fatal("unknown group mode must be rejected")
	}
}
