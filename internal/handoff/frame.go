package handoff

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/metrics"
	"github.com/google/uuid"
)

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// FrameSubmitter dispatches quotes as events on the handoff topic. Dispatch
// is delayed by the configured window so the hosting page sees the sending
// indicator before the form opens; the delay runs on the submitter's own
// lifetime, not the request context, so it survives the HTTP response.
type FrameSubmitter struct {
	pub     publisher
	cfg     config.HandoffConfig
	logg    *logger.Logger
	metrics *metrics.QuoteMetrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFrameSubmitter builds the frame strategy around a handoff topic publisher.
func NewFrameSubmitter(pub *gcppubsub.Publisher, cfg config.HandoffConfig, logg *logger.Logger, qm *metrics.QuoteMetrics) (*FrameSubmitter, error) {
	if pub == nil {
		return nil, fmt.Errorf("handoff publisher required")
	}
	return newFrameSubmitter(newGCPPublisher(pub), cfg, logg, qm)
}

func newFrameSubmitter(pub publisher, cfg config.HandoffConfig, logg *logger.Logger, qm *metrics.QuoteMetrics) (*FrameSubmitter, error) {
	if pub == nil {
		return nil, fmt.Errorf("handoff publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &FrameSubmitter{
		pub:     pub,
		cfg:     cfg,
		logg:    logg,
		metrics: qm,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (s *FrameSubmitter) Strategy() string {
	return "frame"
}

// Submit queues the delayed dispatch and returns immediately. Publish
// failures after the delay are logged and counted, never surfaced.
func (s *FrameSubmitter) Submit(ctx context.Context, req Request) (Receipt, error) {
	data, err := json.Marshal(NewOpenPricingForm(req.Payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("encoding handoff message: %w", err)
	}

	messageID := uuid.NewString()
	logCtx := s.logg.WithFields(context.WithoutCancel(ctx), map[string]any{
		"message_id": messageID,
		"session":    req.Session,
	})

	s.wg.Add(1)
	go s.dispatch(logCtx, messageID, req.Session, data)

	return Receipt{
		Strategy:   s.Strategy(),
		Dispatched: true,
		MessageID:  messageID,
	}, nil
}

func (s *FrameSubmitter) dispatch(logCtx context.Context, messageID, session string, data []byte) {
	defer s.wg.Done()

	select {
	case <-s.ctx.Done():
		s.logg.Warn(logCtx, "handoff dispatch canceled before delay elapsed")
		return
	case <-time.After(s.cfg.DispatchDelay):
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.PublishTimeout)
	defer cancel()

	result := s.pub.Publish(ctx, &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			AttrEventType: EventOpenPricingForm,
			AttrOrigin:    s.cfg.Origin,
			AttrMessageID: messageID,
			AttrSession:   session,
		},
	})
	if result == nil {
		s.logg.Warn(logCtx, "handoff publisher unavailable")
		s.metrics.IncSubmitFailure(s.Strategy())
		return
	}
	if _, err := result.Get(ctx); err != nil {
		s.logg.Error(logCtx, "handoff publish failed", err)
		s.metrics.IncSubmitFailure(s.Strategy())
		return
	}

	s.logg.Info(logCtx, "handoff message dispatched")
}

// Close cancels pending dispatches and waits for in-flight ones to settle.
func (s *FrameSubmitter) Close() {
	s.cancel()
	s.wg.Wait()
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
