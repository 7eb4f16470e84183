package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskFormReceived is the job type name stored in Redis; asynq
	// routes task type strings to handlers.
	TaskFormReceived = "form:received"
)

// FormReceivedPayload is the JSON payload for the form-received
// notification task.
type FormReceivedPayload struct {
	EntryID    int64  `json:"entry_id"`
	CustomerID int64  `json:"customer_id"`
	Comment    string `json:"comment"`
}

// NewFormReceivedTask constructs the asynq task for a form-received
// notification: up to 3 retries, default queue, 30s handler timeout.
func NewFormReceivedTask(entryID, customerID int64, comment string) (*asynq.Task, error) {
	payload, err := json.Marshal(FormReceivedPayload{
		EntryID:    entryID,
		CustomerID: customerID,
		Comment:    comment,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskFormReceived,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyFormReceived enqueues a form-received notification. It
// satisfies the service layer's Notifier contract.
func (j *JobService) NotifyFormReceived(ctx context.Context, entryID, customerID int64, comment string) error {
	task, err := NewFormReceivedTask(entryID, customerID, comment)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("entry_id", entryID).
		Msg("Enqueued form-received notification")

	return nil
}
