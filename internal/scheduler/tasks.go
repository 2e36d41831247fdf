package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskSearchDigest = "leads.search_digest"

// Digest intervals by search frequency.
const (
	FrequencyThreeDays = "3days"
	FrequencyOneWeek   = "1week"
	FrequencyTwoWeeks  = "2week"
)

type SearchDigestPayload struct {
	LeadID    string `json:"leadId"`
	Frequency string `json:"frequency"`
}

func NewSearchDigestTask(payload SearchDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSearchDigest, data), nil
}

func ParseSearchDigestPayload(task *asynq.Task) (SearchDigestPayload, error) {
	var payload SearchDigestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SearchDigestPayload{}, err
	}
	return payload, nil
}

// searchDigestTaskID keys the pending task per lead so rescheduling a
// lead replaces its previous task instead of stacking duplicates.
func searchDigestTaskID(leadID string) string {
	return "search_digest:" + leadID
}

// DigestInterval maps a search frequency to the delay between digests.
// Unknown frequencies fall back to one week.
func DigestInterval(frequency string) time.Duration {
	switch frequency {
	case FrequencyThreeDays:
		return 72 * time.Hour
	case FrequencyTwoWeeks:
		return 14 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}
