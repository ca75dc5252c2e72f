package handoff

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []*gcppubsub.Message
	getErr   error
}

func (f *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return &fakePublishResult{err: f.getErr}
}

func (f *fakePublisher) published() []*gcppubsub.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*gcppubsub.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

type fakePublishResult struct {
	err error
}

func (f *fakePublishResult) Get(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "server-id", nil
}

func frameConfig() config.HandoffConfig {
	return config.HandoffConfig{
		Strategy:       config.StrategyFrame,
		Origin:         "https://quotes.bashfilms.com",
		AllowedOrigins: []string{"https://www.bashfilms.com"},
		DispatchDelay:  time.Millisecond,
		SendingLinger:  time.Millisecond,
		PublishTimeout: time.Second,
	}
}

func TestFrameSubmitterPublishesAfterDelay(t *testing.T) {
	pub := &fakePublisher{}
	sub, err := newFrameSubmitter(pub, frameConfig(), testLogger(), nil)
	require.NoError(t, err)

	receipt, err := sub.Submit(context.Background(), Request{
		Session: "sess-1",
		Payload: Payload{Name: "Demo", Email: "client@example.com", Phone: "7025551234", Message: "notes"},
	})
	require.NoError(t, err)
	assert.True(t, receipt.Dispatched)
	assert.Equal(t, "frame", receipt.Strategy)
	assert.NotEmpty(t, receipt.MessageID)

	sub.Close()

	messages := pub.published()
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, EventOpenPricingForm, msg.Attributes[AttrEventType])
	assert.Equal(t, "https://quotes.bashfilms.com", msg.Attributes[AttrOrigin])
	assert.Equal(t, receipt.MessageID, msg.Attributes[AttrMessageID])
	assert.Equal(t, "sess-1", msg.Attributes[AttrSession])

	var decoded Message
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, EventOpenPricingForm, decoded.Type)
	assert.Equal(t, "client@example.com", decoded.Data.Email)
}

func TestFrameSubmitterSurvivesCanceledRequestContext(t *testing.T) {
	pub := &fakePublisher{}
	sub, err := newFrameSubmitter(pub, frameConfig(), testLogger(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	_, err = sub.Submit(ctx, Request{Session: "sess-1"})
	require.NoError(t, err)
	cancel()

	sub.Close()
	require.Len(t, pub.published(), 1, "dispatch must not ride the request context")
}

func TestFrameSubmitterCloseCancelsPendingDispatch(t *testing.T) {
	pub := &fakePublisher{}
	cfg := frameConfig()
	cfg.DispatchDelay = time.Hour

	sub, err := newFrameSubmitter(pub, cfg, testLogger(), nil)
	require.NoError(t, err)

	_, err = sub.Submit(context.Background(), Request{Session: "sess-1"})
	require.NoError(t, err)

	sub.Close()
	assert.Empty(t, pub.published(), "canceled dispatch must not publish")
}
