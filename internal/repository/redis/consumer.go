package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"redactor/internal/domain/entity"
	"redactor/pkg/metrics"
)

type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) ([]byte, error)
}

type Aggregator interface {
	ProcessReport(ctx context.Context, job *entity.Job) *entity.ReportResult
}

type ResultPublisher interface {
	Publish(ctx context.Context, result *entity.ReportResult) error
}

// Consumer is the job intake loop. It alternates between waiting on the
// queue and processing one job to completion, including result delivery.
type Consumer struct {
	queue      Queue
	aggregator Aggregator
	publisher  ResultPublisher
	popTimeout time.Duration
	backoff    time.Duration
	log        *logrus.Logger
}

func NewConsumer(queue Queue, aggregator Aggregator, publisher ResultPublisher, popTimeout, backoff time.Duration, log *logrus.Logger) *Consumer {
	return &Consumer{
		queue:      queue,
		aggregator: aggregator,
		publisher:  publisher,
		popTimeout: popTimeout,
		backoff:    backoff,
		log:        log,
	}
}

// Start runs until ctx is cancelled. Any error inside one cycle is logged
// and followed by a fixed backoff; the loop never terminates on its own.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.log.Info("intake loop shutting down")
			return nil
		default:
		}

		if err := c.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			metrics.IntakeErrors.Inc()
			c.log.WithError(err).Error("intake cycle failed, backing off")
			select {
			case <-ctx.Done():
			case <-time.After(c.backoff):
			}
		}
	}
}

// runOnce performs one queue pop and, when a job arrives, processes and
// delivers it. A pop timeout with no job is a no-op. An undecodable payload
// is dropped with a log line rather than crashing the loop.
func (c *Consumer) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("intake panic: %v", r)
		}
	}()

	payload, err := c.queue.Pop(ctx, c.popTimeout)
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}

	log := c.log.WithField("traceId", uuid.NewString())

	var job entity.Job
	if err := json.Unmarshal(payload, &job); err != nil {
		log.WithError(err).Error("dropping undecodable job payload")
		return nil
	}

	result := c.aggregator.ProcessReport(ctx, &job)

	// Delivery is at-most-once: a failed POST is logged and backed off, the
	// result is not re-sent.
	if err := c.publisher.Publish(ctx, result); err != nil {
		return fmt.Errorf("deliver result for report %q: %w", result.ReportID, err)
	}

	log.WithFields(logrus.Fields{
		"reportId": result.ReportID,
		"status":   result.Status,
	}).Info("report result delivered")
	return nil
}
