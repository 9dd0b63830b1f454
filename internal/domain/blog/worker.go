package blog

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker consumes view-beacon tasks from the queue and bumps counters in
// the store.
type Worker struct {
	store PostStore
}

// NewWorker creates a new view-count worker.
func NewWorker(store PostStore) *Worker {
	return &Worker{store: store}
}

// HandleIncrementView processes one view-count task.
func (w *Worker) HandleIncrementView(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseIncrementViewPayload(task.Payload())
	if err != nil {
		return err
	}

	if err := w.store.IncrementViews(ctx, payload.Slug); err != nil {
		slog.Error("view increment failed", "slug", payload.Slug, "error", err)
		return err
	}

	slog.Debug("view recorded", "slug", payload.Slug)
	return nil
}
