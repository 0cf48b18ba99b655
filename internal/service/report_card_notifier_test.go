package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/pkg/jobs"
)

type publisherStub struct {
	mu       sync.Mutex
	channels []string
	payloads []interface{}
	err      error
}

func (p *publisherStub) Publish(ctx context.Context, channel string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *publisherStub) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func TestReportCardNotifierDeliversEvents(t *testing.T) {
	pub := &publisherStub{}
	notifier := NewReportCardNotifier(pub, NotifierConfig{Workers: 2}, NewMetricsService(), zap.NewNop())
	notifier.Start(context.Background())
	defer notifier.Stop()

	for _, id := range []string{"rc-1", "rc-2", "rc-3"} {
		notifier.NotifyPublished(context.Background(), models.ReportCardPublishedEvent{ReportCardID: id, StudentID: "s-" + id})
	}

	require.Eventually(t, func() bool { return pub.count() == 3 }, time.Second, 10*time.Millisecond)
	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, []string{"report_cards.published", "report_cards.published", "report_cards.published"}, pub.channels)
	ids := map[string]bool{}
	for _, payload := range pub.payloads {
		event, ok := payload.(models.ReportCardPublishedEvent)
		require.True(t, ok)
		ids[event.ReportCardID] = true
	}
	assert.Len(t, ids, 3)
}

func TestReportCardNotifierSwallowsFailures(t *testing.T) {
	pub := &publisherStub{err: errors.New("redis down")}
	notifier := NewReportCardNotifier(pub, NotifierConfig{Channel: "custom", Workers: 1}, nil, nil)

	err := notifier.handle(context.Background(), jobs.Job{ID: "job-1", Type: jobTypeReportCardPublished, Payload: models.ReportCardPublishedEvent{ReportCardID: "rc-1"}})
	assert.NoError(t, err)

	err = notifier.handle(context.Background(), jobs.Job{ID: "job-2", Type: jobTypeReportCardPublished, Payload: "not an event"})
	assert.NoError(t, err)
	assert.Zero(t, pub.count())
}

func TestReportCardNotifierDropsWhenStopped(t *testing.T) {
	pub := &publisherStub{}
	notifier := NewReportCardNotifier(pub, NotifierConfig{}, nil, nil)

	assert.NotPanics(t, func() {
		notifier.NotifyPublished(context.Background(), models.ReportCardPublishedEvent{ReportCardID: "rc-1"})
	})
	assert.Zero(t, pub.count())
}
