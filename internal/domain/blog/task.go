package blog

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskTypeIncrementView is the asynq task type for view-count beacons.
const TaskTypeIncrementView = "views:increment"

// IncrementViewPayload is the serialized payload for a view-count task.
type IncrementViewPayload struct {
	Slug string `json:"slug"`
}

// NewIncrementViewTask creates a new asynq task recording one view.
func NewIncrementViewTask(slug string) (*asynq.Task, error) {
	payload, err := json.Marshal(IncrementViewPayload{Slug: slug})
	if err != nil {
		return nil, fmt.Errorf("marshaling task payload: %w", err)
	}
	return asynq.NewTask(TaskTypeIncrementView, payload), nil
}

// ParseIncrementViewPayload deserializes the task payload.
func ParseIncrementViewPayload(data []byte) (*IncrementViewPayload, error) {
	var p IncrementViewPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshaling task payload: %w", err)
	}
	return &p, nil
}
