package queue

import (
	"fmt"
	"time"

	"portfolio-api/internal/domain/blog"

	"github.com/hibiken/asynq"
)

// NewClient creates a new asynq client connected to Redis.
func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
}

// NewServer creates a new asynq server connected to Redis.
func NewServer(redisAddr, password string, db int, concurrency int) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"views":   5, // priority weight
				"default": 1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 30s, 60s, 120s, ...
				return time.Duration(30*(1<<uint(n-1))) * time.Second
			},
		},
	)
}

var _ blog.ViewEnqueuer = (*ViewEnqueuer)(nil)

// ViewEnqueuer pushes view-beacon tasks onto the views queue.
type ViewEnqueuer struct {
	client   *asynq.Client
	maxRetry int
}

// NewViewEnqueuer creates a new view-beacon enqueuer.
func NewViewEnqueuer(client *asynq.Client, maxRetry int) *ViewEnqueuer {
	return &ViewEnqueuer{client: client, maxRetry: maxRetry}
}

// EnqueueIncrementView enqueues a view increment task for a post.
func (e *ViewEnqueuer) EnqueueIncrementView(slug string) error {
	task, err := blog.NewIncrementViewTask(slug)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	_, err = e.client.Enqueue(task,
		asynq.MaxRetry(e.maxRetry),
		asynq.Queue("views"),
	)
	if err != nil {
		return fmt.Errorf("enqueuing task: %w", err)
	}

	return nil
}
