// Package scheduler runs deferred work on asynq: periodic property
// search digests for leads that opted into them.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleSearchDigest enqueues the first digest for a lead, replacing
// any pending one. The task id is derived from the lead id so each lead
// has at most one pending user-initiated digest.
func (c *Client) ScheduleSearchDigest(ctx context.Context, leadID uuid.UUID, frequency string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.CancelSearchDigest(ctx, leadID); err != nil {
		return err
	}

	task, err := NewSearchDigestTask(SearchDigestPayload{
		LeadID:    leadID.String(),
		Frequency: frequency,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(DigestInterval(frequency)),
		asynq.Queue(c.queue),
		asynq.TaskID(searchDigestTaskID(leadID.String())),
		asynq.Retention(24*time.Hour),
	)
	return err
}

// ScheduleNextDigest enqueues the follow-up occurrence of a running
// digest chain. It uses an auto-generated task id: the worker calls it
// from inside the digest handler, where the lead-scoped id belongs to
// the task currently being processed and cannot be deleted or reused.
// Stale chain tasks are reconciled by the worker against the lead's
// stored frequency.
func (c *Client) ScheduleNextDigest(ctx context.Context, leadID uuid.UUID, frequency string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewSearchDigestTask(SearchDigestPayload{
		LeadID:    leadID.String(),
		Frequency: frequency,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(DigestInterval(frequency)),
		asynq.Queue(c.queue),
		asynq.Retention(24*time.Hour),
	)
	return err
}

// CancelSearchDigest removes the pending digest task for a lead, if any.
func (c *Client) CancelSearchDigest(ctx context.Context, leadID uuid.UUID) error {
	if c == nil || c.inspector == nil {
		return nil
	}

	err := c.inspector.DeleteTask(c.queue, searchDigestTaskID(leadID.String()))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}

func redisClientOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
