package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"relentless-fetch/internal/models"
)

// Publisher writes one OutcomeRecord per fetch outcome to the outcomes topic.
// Failed and timed-out outcomes also go to the failures topic when one is configured.
type Publisher struct {
	outcomes MessageWriter
	failures MessageWriter
}

// NewPublisher creates writers for the given broker and topics. An empty
// failuresTopic disables failure publishing.
func NewPublisher(broker, outcomesTopic, failuresTopic string) *Publisher {
	p := &Publisher{outcomes: newWriter(broker, outcomesTopic)}
	if failuresTopic != "" {
		p.failures = newWriter(broker, failuresTopic)
	}
	return p
}

// NewPublisherWithWriters builds a publisher on custom writers (tests). failures may be nil.
func NewPublisherWithWriters(outcomes, failures MessageWriter) *Publisher {
	return &Publisher{outcomes: outcomes, failures: failures}
}

func newWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: false,
	}
}

// Close shuts down the underlying writers.
func (p *Publisher) Close() error {
	var errs []error
	if err := p.outcomes.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.failures != nil {
		if err := p.failures.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Record publishes the outcome, keyed by run ID.
func (p *Publisher) Record(ctx context.Context, outcome models.FetchOutcome) error {
	payload, err := json.Marshal(models.NewOutcomeRecord(outcome))
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(outcome.RunID),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	if err := p.outcomes.WriteMessages(ctx, msg); err != nil {
		return err
	}
	if p.failures == nil || outcome.Status == models.StatusSucceeded {
		return nil
	}
	return p.failures.WriteMessages(ctx, msg)
}
