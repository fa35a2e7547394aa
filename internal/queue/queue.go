package queue

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueAssignment schedules one publish task. A negative delay (the
// scheduled time already passed) enqueues for immediate processing.
func EnqueueAssignment(asynqClient *asynq.Client, payload PublishAssignmentPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if delay < 0 {
		delay = 0
	}

	task := asynq.NewTask(TaskTypePublishAssignment, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	slog.Info("publish task enqueued", "assignment_id", payload.AssignmentID, "delay", delay)
	return nil
}
