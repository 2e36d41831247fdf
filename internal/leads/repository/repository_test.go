package repository

import (
	"strconv"
	"strings"
	"testing"
)

func strPtr(v string) *string   { return &v }
func int64Ptr(v int64) *int64   { return &v }
func boolPtr(v bool) *bool      { return &v }
func f64Ptr(v float64) *float64 { return &v }

func clauseColumns(clauses []string) []string {
	cols := make([]string, 0, len(clauses))
	for _, c := range clauses {
		cols = append(cols, strings.SplitN(c, " ", 2)[0])
	}
	return cols
}

func TestBuildUpdateClausesPartialUpdate(t *testing.T) {
	clauses, args, err := buildUpdateClauses(UpdateLeadParams{
		Name:   strPtr("山田 花子"),
		Budget: int64Ptr(80000000),
	})
	if err != nil {
		t.Fatalf("buildUpdateClauses: %v", err)
	}

	wantCols := []string{"name", "budget"}
	gotCols := clauseColumns(clauses)
	if len(gotCols) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", gotCols, wantCols)
	}
	for i, col := range wantCols {
		if gotCols[i] != col {
			t.Errorf("column[%d] = %s, want %s", i, gotCols[i], col)
		}
	}
	if len(args) != 2 {
		t.Fatalf("args = %d, want 2", len(args))
	}
	if args[0] != "山田 花子" || args[1] != int64(80000000) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildUpdateClausesEmptyParams(t *testing.T) {
	clauses, args, err := buildUpdateClauses(UpdateLeadParams{})
	if err != nil {
		t.Fatalf("buildUpdateClauses: %v", err)
	}
	if len(clauses) != 0 || len(args) != 0 {
		t.Errorf("empty params produced clauses %v args %v", clauses, args)
	}
}

// Nullable columns update through their Set flags so an explicit null
// clears the stored value instead of being skipped.
func TestBuildUpdateClausesNullableColumns(t *testing.T) {
	clauses, args, err := buildUpdateClauses(UpdateLeadParams{
		MailSet:            true,
		SourceSet:          true,
		AgentIDSet:         true,
		SearchFrequencySet: true,
	})
	if err != nil {
		t.Fatalf("buildUpdateClauses: %v", err)
	}

	wantCols := []string{"mail", "source", "agent_id", "search_frequency"}
	gotCols := clauseColumns(clauses)
	if len(gotCols) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", gotCols, wantCols)
	}
	for i, col := range wantCols {
		if gotCols[i] != col {
			t.Errorf("column[%d] = %s, want %s", i, gotCols[i], col)
		}
	}
	if len(args) != len(wantCols) {
		t.Errorf("args = %d, want %d", len(args), len(wantCols))
	}
}

func TestBuildUpdateClausesAllScalarFields(t *testing.T) {
	params := UpdateLeadParams{
		Name:              strPtr("n"),
		NameKana:          strPtr("k"),
		Tel:               strPtr("+819012345678"),
		LeadType:          strPtr("buy"),
		Status:            strPtr("Negotiating"),
		Priority:          strPtr("High"),
		Budget:            int64Ptr(1),
		DiscountRate:      f64Ptr(0.9),
		AgentName:         strPtr("a"),
		IsSearchRequested: boolPtr(true),
		Memo:              strPtr("m"),
		TagsSet:           true,
		Criteria:          &SearchCriteria{Areas: []string{"渋谷区"}},
	}

	clauses, args, err := buildUpdateClauses(params)
	if err != nil {
		t.Fatalf("buildUpdateClauses: %v", err)
	}
	if len(clauses) != len(args) {
		t.Fatalf("clauses (%d) and args (%d) out of step", len(clauses), len(args))
	}

	for i, c := range clauses {
		want := "$" + strconv.Itoa(i+1)
		if !strings.HasSuffix(c, want) {
			t.Errorf("clause %q does not use placeholder %s", c, want)
		}
	}
}
