package domain

// Board grouping dimensions. The status board and the priority board share
// the same drag mechanism; only the grouped field differs.
const (
	GroupByStatus   = "status"
	GroupByPriority = "priority"
)

// IsKnownGroupBy reports whether the value names a board dimension.
func IsKnownGroupBy(groupBy string) bool {
	return groupBy == GroupByStatus || groupBy == GroupByPriority
}

// ResolveDropTarget maps a drag-and-drop gesture to a target column id.
// A drop lands either on a column directly or on another card; in the
// latter case the target is that card's group value in the active
// dimension. Returns false when nothing resolvable was hit.
func ResolveDropTarget(columnIDs []string, overID string, overLeadGroup string) (string, bool) {
	for _, id := range columnIDs {
		if id == overID {
			return id, true
		}
	}
	if overLeadGroup != "" {
		return overLeadGroup, true
	}
	return "", false
}
