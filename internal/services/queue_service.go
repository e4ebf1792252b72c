package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fishplant-backend/internal/metrics"
	"fishplant-backend/internal/models"
)

type queueStore interface {
	Enqueue(ctx context.Context, kind string, payload json.RawMessage) (*models.QueuedSubmission, error)
	List(ctx context.Context) ([]models.QueuedSubmission, error)
	DrainAll(ctx context.Context) ([]models.QueuedSubmission, error)
	Prepend(ctx context.Context, items []models.QueuedSubmission) error
	Count(ctx context.Context) (int, error)
}

// SubmissionDeliverer replays one queued submission against the upstream.
// It may rewrite item.Payload to record partial progress (a report row that
// landed before its photos failed) so a later replay does not repeat it.
type SubmissionDeliverer interface {
	Deliver(ctx context.Context, item *models.QueuedSubmission) error
}

// SyncResult summarizes one replay pass over the queue.
type SyncResult struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

type QueueService struct {
	repo    queueStore
	deliver SubmissionDeliverer
}

func NewQueueService(repo queueStore, deliver SubmissionDeliverer) *QueueService {
	return &QueueService{repo: repo, deliver: deliver}
}

// SetDeliverer breaks the construction cycle: the inventory service enqueues
// through the queue, and the queue replays through the inventory service.
func (s *QueueService) SetDeliverer(deliver SubmissionDeliverer) {
	s.deliver = deliver
}

func (s *QueueService) Enqueue(ctx context.Context, kind string, payload json.RawMessage) (*models.QueuedSubmission, error) {
	item, err := s.repo.Enqueue(ctx, kind, payload)
	if err != nil {
		return nil, err
	}
	s.updateDepth(ctx)
	log.Printf("[Queue] enqueued %s submission #%d", kind, item.ID)
	return item, nil
}

func (s *QueueService) List(ctx context.Context) ([]models.QueuedSubmission, error) {
	return s.repo.List(ctx)
}

// SyncPending drains the whole queue, replays each submission in order, and
// puts failures back ahead of anything enqueued during the pass. Their
// relative order is preserved, so the next pass retries them first.
func (s *QueueService) SyncPending(ctx context.Context) (*SyncResult, error) {
	if s.deliver == nil {
		return nil, fmt.Errorf("queue service has no deliverer")
	}
	items, err := s.repo.DrainAll(ctx)
	if err != nil {
		metrics.QueueSyncRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	result := &SyncResult{Attempted: len(items)}
	var failed []models.QueuedSubmission
	for i := range items {
		item := &items[i]
		if err := s.deliver.Deliver(ctx, item); err != nil {
			log.Printf("[Queue] replay of %s submission #%d failed: %v", item.Kind, item.ID, err)
			failed = append(failed, *item)
			continue
		}
		result.Delivered++
	}
	result.Failed = len(failed)

	if len(failed) > 0 {
		if err := s.repo.Prepend(ctx, failed); err != nil {
			// Queue rows are already deleted; losing them is worse than
			// a duplicate replay later.
			metrics.QueueSyncRuns.WithLabelValues("error").Inc()
			return result, err
		}
		metrics.QueueSyncRuns.WithLabelValues("partial").Inc()
	} else {
		metrics.QueueSyncRuns.WithLabelValues("ok").Inc()
	}

	s.updateDepth(ctx)
	if result.Attempted > 0 {
		log.Printf("[Queue] sync: %d delivered, %d requeued", result.Delivered, result.Failed)
	}
	return result, nil
}

func (s *QueueService) updateDepth(ctx context.Context) {
	if n, err := s.repo.Count(ctx); err == nil {
		metrics.QueueDepth.Set(float64(n))
	}
}
