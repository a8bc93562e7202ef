package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goverland-labs/goverland-platform-events/events"
	client "github.com/goverland-labs/goverland-platform-events/pkg/natsclient"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	SubjectGrantEnacted = "proposals.grant_enacted"

	maxPendingAckPerConsumer = 10
	maxDeliverPerMessage     = 10
)

// GrantEnactedEvent is emitted when a grant proposal passes and its vesting starts
type GrantEnactedEvent struct {
	ProposalID string    `json:"proposal_id"`
	EnactedAt  time.Time `json:"enacted_at"`
	Months     int       `json:"months"`
}

type Consumer struct {
	conn     *nats.Conn
	service  *Service
	group    string
	consumer *client.Consumer[GrantEnactedEvent]
}

func NewConsumer(nc *nats.Conn, s *Service, group string) *Consumer {
	return &Consumer{
		conn:    nc,
		service: s,
		group:   group,
	}
}

// handle schedules monthly updates for the enacted grant. Returned errors are
// redelivered, events which could never succeed are acknowledged.
func (c *Consumer) handle(ctx context.Context, ev GrantEnactedEvent) error {
	_, err := c.service.Schedule(ctx, ev.ProposalID, ev.EnactedAt, ev.Months)
	switch {
	case errors.Is(err, ErrAlreadyScheduled):
		log.Debug().Str("proposal", ev.ProposalID).Msg("updates are already scheduled")

		return nil
	case errors.Is(err, ErrInvalidSchedule), errors.Is(err, ErrProposalNotFound):
		log.Warn().Err(err).Str("proposal", ev.ProposalID).Msg("skip grant enacted event")

		return nil
	case err != nil:
		log.Error().Err(err).Str("proposal", ev.ProposalID).Msg("process event")

		return fmt.Errorf("schedule updates for %s: %w", ev.ProposalID, err)
	}

	return nil
}

func (c *Consumer) handler(ctx context.Context) events.Handler[GrantEnactedEvent] {
	return func(payload GrantEnactedEvent) error {
		return c.handle(ctx, payload)
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	cs, err := client.NewConsumer(
		ctx,
		c.conn,
		c.group,
		SubjectGrantEnacted,
		c.handler(ctx),
		client.WithMaxAckPending(maxPendingAckPerConsumer),
		client.WithMaxDeliver(maxDeliverPerMessage),
	)
	if err != nil {
		return fmt.Errorf("consume for %s/%s: %w", c.group, SubjectGrantEnacted, err)
	}

	c.consumer = cs

	log.Info().Msg("grant updates consumers are started")

	<-ctx.Done()
	return c.stop()
}

func (c *Consumer) stop() error {
	if c.consumer == nil {
		return nil
	}

	if err := c.consumer.Close(); err != nil {
		log.Error().Err(err).Msg("close grant updates consumer")
	}

	return nil
}
