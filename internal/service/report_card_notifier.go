package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/pkg/jobs"
)

const jobTypeReportCardPublished = "report_card.published"

type eventPublisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

// NotifierConfig tunes the publication notifier.
type NotifierConfig struct {
	Channel    string
	Workers    int
	BufferSize int
}

// ReportCardNotifier tells parents about published report cards. Delivery
// runs on a background queue after the approval has committed; failures are
// logged and dropped.
type ReportCardNotifier struct {
	queue     *jobs.Queue
	publisher eventPublisher
	channel   string
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewReportCardNotifier builds the notifier and its worker queue.
func NewReportCardNotifier(publisher eventPublisher, cfg NotifierConfig, metrics *MetricsService, logger *zap.Logger) *ReportCardNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Channel == "" {
		cfg.Channel = "report_cards.published"
	}
	n := &ReportCardNotifier{publisher: publisher, channel: cfg.Channel, metrics: metrics, logger: logger}
	n.queue = jobs.NewQueue("report-card-notifications", n.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		Logger:     logger,
	})
	return n
}

// Start launches the delivery workers.
func (n *ReportCardNotifier) Start(ctx context.Context) {
	n.queue.Start(ctx)
}

// Stop drains the workers.
func (n *ReportCardNotifier) Stop() {
	n.queue.Stop()
}

// NotifyPublished schedules delivery of event. It never fails the caller.
func (n *ReportCardNotifier) NotifyPublished(_ context.Context, event models.ReportCardPublishedEvent) {
	job := jobs.Job{ID: uuid.NewString(), Type: jobTypeReportCardPublished, Payload: event}
	if err := n.queue.Enqueue(job); err != nil {
		n.metrics.RecordNotification("dropped")
		n.logger.Warn("report card notification not queued",
			zap.String("report_card_id", event.ReportCardID),
			zap.Error(err))
	}
}

func (n *ReportCardNotifier) handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(models.ReportCardPublishedEvent)
	if !ok {
		n.logger.Error("unexpected notification payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	if err := n.publisher.Publish(ctx, n.channel, event); err != nil {
		n.metrics.RecordNotification("failed")
		n.logger.Warn("report card notification failed",
			zap.String("report_card_id", event.ReportCardID),
			zap.String("student_id", event.StudentID),
			zap.Error(err))
		return nil
	}
	n.metrics.RecordNotification("sent")
	n.logger.Info("report card notification sent",
		zap.String("report_card_id", event.ReportCardID),
		zap.String("student_id", event.StudentID))
	return nil
}
