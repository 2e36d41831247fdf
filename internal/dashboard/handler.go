package dashboard

import (
	"context"
	"time"

	leadsrepo "github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/platform/httpkit"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// LeadSource provides the full lead collection.
type LeadSource interface {
	List(ctx context.Context) ([]leadsrepo.Lead, error)
}

// TargetSource provides the month targets for a year.
type TargetSource interface {
	TargetsForYear(ctx context.Context, year int) (map[string]int64, error)
}

type Handler struct {
	leads   LeadSource
	targets TargetSource
	clock   func() time.Time
}

func NewHandler(leads LeadSource, targets TargetSource) *Handler {
	return &Handler{leads: leads, targets: targets, clock: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Snapshot)
}

// SnapshotResponse bundles everything the dashboard page renders in one
// round trip.
type SnapshotResponse struct {
	Metrics        Metrics       `json:"metrics"`
	PipelineAmount []PipelineRow `json:"pipelineAmount"`
	PipelineCount  []PipelineRow `json:"pipelineCount"`
	RecentWins     []Win         `json:"recentWins"`
}

func (h *Handler) Snapshot(c *gin.Context) {
	now := h.clock()

	var (
		leads   []leadsrepo.Lead
		targets map[string]int64
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		leads, err = h.leads.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		targets, err = h.targets.TargetsForYear(ctx, now.Year())
		return err
	})
	if err := g.Wait(); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	snapshot := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		snapshot = append(snapshot, Lead{
			ID:           lead.ID,
			Name:         lead.Name,
			Status:       lead.Status,
			Priority:     lead.Priority,
			Budget:       lead.Budget,
			DiscountRate: lead.DiscountRate,
			AgentName:    lead.AgentName,
			UpdatedAt:    lead.UpdatedAt,
		})
	}

	httpkit.OK(c, SnapshotResponse{
		Metrics:        CalculateMetrics(snapshot, targets, now),
		PipelineAmount: CalculatePipelineData(snapshot, ModeAmount),
		PipelineCount:  CalculatePipelineData(snapshot, ModeCount),
		RecentWins:     RecentWins(snapshot),
	})
}
