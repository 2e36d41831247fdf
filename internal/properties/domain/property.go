// Package domain holds the property model and the seed/live merge rules.
package domain

import (
	"sort"
	"time"
)

// Property statuses.
const (
	StatusActive      = "active"
	StatusNegotiating = "negotiating"
	StatusSold        = "sold"
)

// IsKnownStatus reports whether the value is a valid listing status.
func IsKnownStatus(status string) bool {
	return status == StatusActive || status == StatusNegotiating || status == StatusSold
}

// Property is a listing. Two provenance classes share this shape: bundled
// seed entries (never persisted) and live database documents. A live
// document whose id matches a seed id overrides that seed entry.
type Property struct {
	ID        string
	Name      string
	Address   string
	Price     int64
	Layout    string
	Size      float64
	BuiltYear int
	Status    string
	Images    []string
	Memo      string
	Latitude  *float64
	Longitude *float64
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// sortKey is updatedAt when set, else createdAt. Zero when neither is set,
// which sorts last.
func sortKey(p Property) time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// Merge produces the effective listing view from the seed catalog and the
// live document set:
//   - a seed entry with a live override takes the override, unless the
//     override is soft-deleted, in which case the entry is omitted entirely
//   - a seed entry with no override passes through unchanged
//   - live documents with novel ids are appended, excluding soft-deleted ones
//
// The result is sorted by updatedAt (fallback createdAt) descending; ties
// keep seed order ahead of live order.
func Merge(seeds []Property, live []Property) []Property {
	overrides := make(map[string]Property, len(live))
	for _, doc := range live {
		overrides[doc.ID] = doc
	}

	seedIDs := make(map[string]struct{}, len(seeds))
	effective := make([]Property, 0, len(seeds)+len(live))

	for _, seed := range seeds {
		seedIDs[seed.ID] = struct{}{}
		if override, ok := overrides[seed.ID]; ok {
			if override.Deleted {
				continue
			}
			effective = append(effective, override)
			continue
		}
		effective = append(effective, seed)
	}

	for _, doc := range live {
		if _, isSeed := seedIDs[doc.ID]; isSeed {
			continue
		}
		if doc.Deleted {
			continue
		}
		effective = append(effective, doc)
	}

	sort.SliceStable(effective, func(i, j int) bool {
		return sortKey(effective[i]).After(sortKey(effective[j]))
	})
	return effective
}

// Resolve returns the effective document for one id: the live override
// unless deleted, else the seed entry. The second return reports whether
// the id resolves at all.
func Resolve(seeds []Property, live *Property, id string) (Property, bool) {
	if live != nil {
		if live.Deleted {
			return Property{}, false
		}
		return *live, true
	}
	for _, seed := range seeds {
		if seed.ID == id {
			return seed, true
		}
	}
	return Property{}, false
}
