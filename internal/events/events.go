package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombook/infras/kafka"
)

const (
	TopicBookingCreated   = "roombook.booking.created"
	TopicBookingCancelled = "roombook.booking.cancelled"
	TopicUserRegistered   = "roombook.user.registered"
	TopicUserLoggedIn     = "roombook.user.logged_in"
)

// BookingEvent carries everything the notification worker needs to render a
// confirmation or cancellation email without calling back into the API.
type BookingEvent struct {
	BookingID    string `json:"booking_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	RoomName     string `json:"room_name"`
	BookingDate  string `json:"booking_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	TotalAmount  int64  `json:"total_amount"`
	CheckInToken string `json:"check_in_token"`
}

type UserEvent struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token,omitempty"`
}

// Dispatcher publishes domain events. Implementations must not block the
// request path on broker availability beyond the producer timeout.
type Dispatcher interface {
	Dispatch(ctx context.Context, topic, key string, payload any) error
}

type kafkaDispatcher struct {
	client kafka.Client
}

func NewDispatcher(client kafka.Client) Dispatcher {
	return &kafkaDispatcher{client: client}
}

func (d *kafkaDispatcher) Dispatch(ctx context.Context, topic, key string, payload any) error {
	msg := kafka.Message{Key: key, Value: payload}

	if err := d.client.SendMessages(ctx, topic, msg); err != nil {
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to dispatch event")

		return fmt.Errorf("failed to dispatch event to %s: %w", topic, err)
	}

	return nil
}
