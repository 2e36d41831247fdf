package settings

import (
	"encoding/json"
	"testing"
)

func TestTargetsYearPatch(t *testing.T) {
	yearKey, patch, err := targetsYearPatch(2026, map[string]int64{"1": 5000000, "12": 8000000})
	if err != nil {
		t.Fatalf("targetsYearPatch: %v", err)
	}
	if yearKey != "2026" {
		t.Errorf("year key = %q, want 2026", yearKey)
	}

	var months map[string]int64
	if err := json.Unmarshal(patch, &months); err != nil {
		t.Fatalf("patch is not valid JSON: %v", err)
	}
	if months["1"] != 5000000 || months["12"] != 8000000 {
		t.Errorf("unexpected months: %v", months)
	}
}

func TestTargetsYearPatchNilMonths(t *testing.T) {
	_, patch, err := targetsYearPatch(2026, nil)
	if err != nil {
		t.Fatalf("targetsYearPatch: %v", err)
	}
	if string(patch) != "{}" {
		t.Errorf("patch = %s, want {}", patch)
	}
}
