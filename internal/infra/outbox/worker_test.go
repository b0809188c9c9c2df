package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type flakyStore struct {
	claims int32
	doc    *EventDocument
	sent   chan string
}

func (s *flakyStore) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	switch atomic.AddInt32(&s.claims, 1) {
	case 1:
		return nil, errors.New("connection reset by peer")
	case 2:
		return s.doc, nil
	default:
		return nil, nil
	}
}

func (s *flakyStore) MarkSent(ctx context.Context, id string) error {
	s.sent <- id
	return nil
}

func (s *flakyStore) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	return nil
}

type captureProducer struct {
	topics chan string
}

func (p *captureProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	var evt map[string]any
	if err := json.Unmarshal(payload, &evt); err != nil {
		return err
	}
	p.topics <- topic
	return nil
}

func TestWorkerSurvivesClaimError(t *testing.T) {
	store := &flakyStore{
		doc: &EventDocument{
			ID:         "evt-1",
			Name:       "booking.requested",
			Payload:    []byte(`{"booking_id":"bk-1"}`),
			OccurredAt: time.Now().UTC(),
			Aggregate:  "bk-1",
		},
		sent: make(chan string, 1),
	}
	producer := &captureProducer{topics: make(chan string, 1)}
	w := &Worker{
		Store:    store,
		Producer: producer,
		Interval: time.Millisecond,
		ID:       "worker-test",
	}

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- w.Run(ctx) }()

	select {
	case topic := <-producer.topics:
		if topic != "booking.events.v1" {
			t.Fatalf("topic = %q, want booking.events.v1", topic)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped publishing after a claim error")
	}
	select {
	case id := <-store.sent:
		if id != "evt-1" {
			t.Fatalf("marked sent %q, want evt-1", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("claimed event never marked sent")
	}

	cancel()
	select {
	case err := <-runErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestWorkerRequiresDependencies(t *testing.T) {
	w := &Worker{}
	if err := w.Run(context.Background()); !errors.Is(err, ErrWorkerNotConfigured) {
		t.Fatalf("Run = %v, want ErrWorkerNotConfigured", err)
	}
}
