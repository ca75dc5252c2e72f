package handoff

import (
	"context"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/metrics"
)

type confirmationStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ConfirmationKey(session string) string
}

// AckConsumer watches the acknowledgement subscription and raises the
// confirmation flag when the hosting page reports a successful submission.
// Acknowledgements are deliberately not correlated to a specific dispatch;
// any accepted ack confirms the session it names.
type AckConsumer struct {
	subscription *pubsub.Subscriber
	flags        confirmationStore
	allowed      map[string]struct{}
	ttl          time.Duration
	logg         *logger.Logger
	metrics      *metrics.QuoteMetrics
}

// NewAckConsumer builds the acknowledgement consumer.
func NewAckConsumer(subscription *pubsub.Subscriber, flags confirmationStore, cfg config.HandoffConfig, logg *logger.Logger, qm *metrics.QuoteMetrics) (*AckConsumer, error) {
	if subscription == nil {
		return nil, fmt.Errorf("ack subscription required")
	}
	if flags == nil {
		return nil, fmt.Errorf("confirmation store required")
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("allowed origins required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return &AckConsumer{
		subscription: subscription,
		flags:        flags,
		allowed:      allowed,
		ttl:          cfg.ConfirmationTTL,
		logg:         logg,
		metrics:      qm,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *AckConsumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *AckConsumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes[AttrEventType]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != EventQuoteSubmittedSuccess {
		c.logg.Info(logCtx, "skipping non-acknowledgement event")
		return processResult{ack: true}
	}

	origin := strings.TrimSpace(msg.Attributes[AttrOrigin])
	if _, ok := c.allowed[origin]; !ok {
		c.logg.Warn(logCtx, "dropping acknowledgement from unlisted origin")
		c.metrics.IncAckDropped("unlisted_origin")
		return processResult{ack: true}
	}

	session := strings.TrimSpace(msg.Attributes[AttrSession])
	logCtx = c.logg.WithField(logCtx, "session", session)

	key := c.flags.ConfirmationKey(session)
	if err := c.flags.Set(ctx, key, "1", c.ttl); err != nil {
		c.logg.Error(logCtx, "failed to set confirmation flag", err)
		return processResult{nack: true}
	}

	c.metrics.IncConfirmation()
	c.logg.Info(logCtx, "submission confirmed")
	return processResult{ack: true}
}
