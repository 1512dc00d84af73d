package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// ExpiryPayload identifies the booking whose payment window is being checked.
type ExpiryPayload struct {
	BookingID string `json:"bookingId"`
}

// NewBookingExpiryTask builds the deferred expiry-check task.
func NewBookingExpiryTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpiryPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqExpiryScheduler enqueues expiry tasks onto the asynq queue. It
// satisfies the booking service's ExpiryScheduler.
type AsynqExpiryScheduler struct {
	Client *asynq.Client
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(bookingID string, fireAt time.Time) error {
	task, opts, err := NewBookingExpiryTask(bookingID, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
