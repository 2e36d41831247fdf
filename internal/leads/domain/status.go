package domain

const (
	StatusNew         = "New"
	StatusSent        = "Sent"
	StatusScheduled   = "Scheduled"
	StatusViewed      = "Viewed"
	StatusNegotiating = "Negotiating"
	StatusClosed      = "Closed"
)

// CanonicalStatuses is the fixed, ordered status id set. The settings module
// lets users relabel and recolor these ids but never add or remove them; a
// lead document may still carry a stale id after config edits, and callers
// must tolerate that (render the raw id).
var CanonicalStatuses = []string{
	StatusNew,
	StatusSent,
	StatusScheduled,
	StatusViewed,
	StatusNegotiating,
	StatusClosed,
}

// PipelineStatuses are the statuses that count toward expected (not yet
// closed) revenue on the dashboard.
var PipelineStatuses = []string{StatusScheduled, StatusViewed, StatusNegotiating}

var canonicalStatusSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(CanonicalStatuses))
	for _, s := range CanonicalStatuses {
		set[s] = struct{}{}
	}
	return set
}()

// IsCanonicalStatus reports whether the id is one of the six fixed status ids.
func IsCanonicalStatus(status string) bool {
	_, ok := canonicalStatusSet[status]
	return ok
}

const (
	PriorityHigh = "High"
	PriorityMid  = "Mid"
	PriorityLow  = "Low"
)

// Priorities is the fixed priority set, in board column order.
var Priorities = []string{PriorityHigh, PriorityMid, PriorityLow}

// IsKnownPriority reports whether the value is a valid priority.
func IsKnownPriority(priority string) bool {
	return priority == PriorityHigh || priority == PriorityMid || priority == PriorityLow
}

const (
	LeadTypeBuy  = "Buy"
	LeadTypeSell = "Sell"
)

// Activity types for the per-lead contact log.
const (
	ActivityCall    = "Call"
	ActivityEmail   = "Email"
	ActivityMeeting = "Meeting"
	ActivityVisit   = "Visit"
	ActivityNote    = "Note"
)

var knownActivityTypes = map[string]struct{}{
	ActivityCall:    {},
	ActivityEmail:   {},
	ActivityMeeting: {},
	ActivityVisit:   {},
	ActivityNote:    {},
}

// IsKnownActivityType reports whether the value is a valid activity type.
func IsKnownActivityType(activityType string) bool {
	_, ok := knownActivityTypes[activityType]
	return ok
}

// Search digest frequencies.
const (
	SearchFrequency3Days = "3days"
	SearchFrequency1Week = "1week"
	SearchFrequency2Week = "2week"
)

// IsKnownSearchFrequency reports whether the value is a valid digest frequency.
func IsKnownSearchFrequency(frequency string) bool {
	return frequency == SearchFrequency3Days || frequency == SearchFrequency1Week || frequency == SearchFrequency2Week
}
