package domain

import (
	"testing"
	"time"
)

func ts(day int) time.Time {
	return time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC)
}

func TestMergeSeedPassthrough(t *testing.T) {
	seeds := []Property{
		{ID: "p1", Name: "パークコート渋谷", CreatedAt: ts(1)},
		{ID: "p2", Name: "シティタワー恵比寿", CreatedAt: ts(2)},
	}

	got := Merge(seeds, nil)
	if len(got) != 2 {
		t.Fatalf("expected both seed entries, got %d", len(got))
	}
	if got[0].ID != "p2" || got[1].ID != "p1" {
		t.Errorf("expected newest-first order, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestMergeOverrideWins(t *testing.T) {
	seeds := []Property{{ID: "p1", Name: "旧名称", Price: 100, CreatedAt: ts(1)}}
	live := []Property{{ID: "p1", Name: "新名称", Price: 200, CreatedAt: ts(1), UpdatedAt: ts(5)}}

	got := Merge(seeds, live)
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %d", len(got))
	}
	if got[0].Name != "新名称" || got[0].Price != 200 {
		t.Errorf("live override must replace the seed entry, got %+v", got[0])
	}
}

func TestMergeDeletedOverrideSuppressesSeed(t *testing.T) {
	seeds := []Property{
		{ID: "p1", CreatedAt: ts(1)},
		{ID: "p2", CreatedAt: ts(2)},
	}
	live := []Property{{ID: "p1", Deleted: true, UpdatedAt: ts(9)}}

	got := Merge(seeds, live)
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("soft-deleted override must hide the seed entry, got %+v", got)
	}
}

func TestMergeNovelLiveDocs(t *testing.T) {
	seeds := []Property{{ID: "p1", CreatedAt: ts(1)}}
	live := []Property{
		{ID: "x1", CreatedAt: ts(3)},
		{ID: "x2", Deleted: true, CreatedAt: ts(4)},
	}

	got := Merge(seeds, live)
	if len(got) != 2 {
		t.Fatalf("expected seed + one novel doc, got %d", len(got))
	}
	if got[0].ID != "x1" || got[1].ID != "p1" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	for _, p := range got {
		if p.ID == "x2" {
			t.Error("deleted novel doc must not appear")
		}
	}
}

func TestMergeSortFallsBackToCreatedAt(t *testing.T) {
	seeds := []Property{
		{ID: "old", CreatedAt: ts(1)},
		{ID: "touched", CreatedAt: ts(2), UpdatedAt: ts(10)},
		{ID: "recent", CreatedAt: ts(6)},
	}

	got := Merge(seeds, nil)
	want := []string{"touched", "recent", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestResolve(t *testing.T) {
	seeds := []Property{{ID: "p1", Name: "シード物件"}}

	if _, ok := Resolve(seeds, &Property{ID: "p1", Deleted: true}, "p1"); ok {
		t.Error("deleted override must not resolve")
	}
	if got, ok := Resolve(seeds, nil, "p1"); !ok || got.Name != "シード物件" {
		t.Errorf("seed fallback failed: %+v ok=%v", got, ok)
	}
	if live, ok := Resolve(seeds, &Property{ID: "p1", Name: "上書き"}, "p1"); !ok || live.Name != "上書き" {
		t.Errorf("override must win: %+v ok=%v", live, ok)
	}
	if _, ok := Resolve(seeds, nil, "nope"); ok {
		t.Error("unknown id must not resolve")
	}
}
