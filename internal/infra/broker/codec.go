// Package broker carries notification tasks over a durable RabbitMQ queue.
package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const contentTypeJSON = "application/json"

func encodeTask(task shared.NotificationTask, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(task)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal notification task: %w", err)
	}
	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    task.ID.String(),
		Type:         task.Reason.String(),
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

func decodeTask(body []byte) (shared.NotificationTask, error) {
	var task shared.NotificationTask
	if err := json.Unmarshal(body, &task); err != nil {
		return shared.NotificationTask{}, fmt.Errorf("failed to unmarshal notification task: %w", err)
	}
	if task.RecipientID == uuid.Nil {
		return shared.NotificationTask{}, fmt.Errorf("notification task %s has no recipient", task.ID)
	}
	return task, nil
}
