// Package settings manages the shared status display configuration and the
// per-year monthly revenue targets.
package settings

// StatusConfig controls how one canonical status id is displayed: its
// label, column color and board order. Editing it never changes the id set
// itself.
type StatusConfig struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// DefaultStatusConfig returns the factory display configuration, used when
// no statuses document has been saved yet.
func DefaultStatusConfig() []StatusConfig {
	return []StatusConfig{
		{ID: "New", Label: "新規", Color: "#cbd5e1", Order: 1},
		{ID: "Sent", Label: "資料送付", Color: "#8b5cf6", Order: 2},
		{ID: "Scheduled", Label: "案内予定", Color: "#6366f1", Order: 3},
		{ID: "Viewed", Label: "内見済", Color: "#3b82f6", Order: 4},
		{ID: "Negotiating", Label: "商談中", Color: "#f59e0b", Order: 5},
		{ID: "Closed", Label: "成約", Color: "#10b981", Order: 6},
	}
}
