package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Kento03Onodera/pick-re-crm/internal/email"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	propertydomain "github.com/Kento03Onodera/pick-re-crm/internal/properties/domain"
	"github.com/Kento03Onodera/pick-re-crm/platform/config"
	"github.com/Kento03Onodera/pick-re-crm/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// PropertySource lists the purchasable listings the digest matches
// against lead criteria.
type PropertySource interface {
	Active(ctx context.Context) ([]propertydomain.Property, error)
}

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	leads      *repository.Repository
	properties PropertySource
	sender     email.Sender
	client     *Client
	log        *logger.Logger
}

func NewWorker(
	cfg config.SchedulerConfig,
	leads *repository.Repository,
	properties PropertySource,
	sender email.Sender,
	client *Client,
	log *logger.Logger,
) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		leads:      leads,
		properties: properties,
		sender:     sender,
		client:     client,
		log:        log,
	}

	mux.HandleFunc(TaskSearchDigest, w.handleSearchDigest)

	return w, nil
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleSearchDigest sends one property digest and reschedules the next
// one. The task is dropped without error when the lead is gone or has
// opted out since it was enqueued.
func (w *Worker) handleSearchDigest(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSearchDigestPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	lead, err := w.leads.GetByID(ctx, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !lead.IsSearchRequested {
		return nil
	}

	frequency, ok := digestFrequency(lead, payload)
	if !ok {
		return nil
	}

	if lead.Mail != nil && *lead.Mail != "" {
		listings, err := w.properties.Active(ctx)
		if err != nil {
			return err
		}

		matches := matchCriteria(listings, lead.Criteria)
		if len(matches) > 0 {
			subject := fmt.Sprintf("【物件のご案内】%s様 条件に合う物件 %d件", lead.Name, len(matches))
			if err := w.sender.SendSearchDigestEmail(ctx, *lead.Mail, subject, digestHTML(lead, matches)); err != nil {
				return err
			}
			w.log.Info("search digest sent", "lead_id", leadID, "matches", len(matches))
		} else {
			w.log.Info("search digest skipped, no matches", "lead_id", leadID)
		}
	}

	if err := w.client.ScheduleNextDigest(ctx, leadID, frequency); err != nil {
		// The email is already out. Retrying the whole task would
		// resend it, so the chain ends here and the next lead update
		// restarts it.
		w.log.Error("could not schedule next digest", "lead_id", leadID, "error", err)
		return fmt.Errorf("schedule next digest: %v: %w", err, asynq.SkipRetry)
	}
	return nil
}

// digestFrequency resolves the frequency a chain task should continue
// at. A frequency change replaces the pending lead-scoped task but
// cannot reach chain tasks already enqueued with auto ids. Those carry
// the old frequency in their payload and report ok=false here so the
// handler drops them.
func digestFrequency(lead repository.Lead, payload SearchDigestPayload) (string, bool) {
	if lead.SearchFrequency == nil {
		return payload.Frequency, true
	}
	if *lead.SearchFrequency != payload.Frequency {
		return "", false
	}
	return *lead.SearchFrequency, true
}

// matchCriteria keeps listings that satisfy every populated criterion.
// An empty criterion matches everything.
func matchCriteria(listings []propertydomain.Property, criteria repository.SearchCriteria) []propertydomain.Property {
	var matches []propertydomain.Property
	for _, p := range listings {
		if criteria.BudgetMin != nil && p.Price < *criteria.BudgetMin {
			continue
		}
		if criteria.BudgetMax != nil && p.Price > *criteria.BudgetMax {
			continue
		}
		if criteria.SizeMin != nil && p.Size < *criteria.SizeMin {
			continue
		}
		if criteria.BuiltYearMax != nil && p.BuiltYear > 0 && p.BuiltYear > *criteria.BuiltYearMax {
			continue
		}
		if len(criteria.Layouts) > 0 && !containsString(criteria.Layouts, p.Layout) {
			continue
		}
		if len(criteria.Areas) > 0 && !containsSubstring(criteria.Areas, p.Address) {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsSubstring(needles []string, haystack string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func digestHTML(lead repository.Lead, matches []propertydomain.Property) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>%s 様</p>", html.EscapeString(lead.Name)))
	b.WriteString("<p>ご希望の条件に合う物件をご案内いたします。</p><ul>")
	for _, p := range matches {
		b.WriteString(fmt.Sprintf(
			"<li><strong>%s</strong><br>%s<br>%s / %s万円</li>",
			html.EscapeString(p.Name),
			html.EscapeString(p.Address),
			html.EscapeString(p.Layout),
			formatManYen(p.Price),
		))
	}
	b.WriteString("</ul><p>詳細をご希望の際は担当エージェントまでご連絡ください。</p>")
	return b.String()
}

// formatManYen renders a yen amount in units of 10,000 yen, the
// customary listing format.
func formatManYen(price int64) string {
	man := price / 10000
	if price%10000 != 0 {
		return fmt.Sprintf("%.1f", float64(price)/10000)
	}
	return fmt.Sprintf("%d", man)
}
