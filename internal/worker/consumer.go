package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"roombook/infras/kafka"
	"roombook/internal/events"
	"roombook/internal/mailer"
)

// Consumer drains the notification topics and turns events into emails.
// Delivery is best-effort; a failed send is logged and the offset is
// committed regardless.
type Consumer struct {
	client kafka.Client
	mailer mailer.Mailer
	group  string
}

func NewConsumer(client kafka.Client, mailer mailer.Mailer, group string) *Consumer {
	return &Consumer{
		client: client,
		mailer: mailer,
		group:  group,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	topics := map[string]func(kafkaGo.Message){
		events.TopicBookingCreated:   c.handleBookingCreated,
		events.TopicBookingCancelled: c.handleBookingCancelled,
		events.TopicUserRegistered:   c.handleUserRegistered,
		events.TopicUserLoggedIn:     c.handleUserLoggedIn,
	}

	var wg sync.WaitGroup
	for topic, handler := range topics {
		wg.Add(1)

		go func(topic string, handler func(kafkaGo.Message)) {
			defer wg.Done()
			c.client.Consume(ctx, c.group, topic, handler)
		}(topic, handler)
	}

	wg.Wait()
}

func (c *Consumer) handleBookingCreated(msg kafkaGo.Message) {
	event, ok := decode[events.BookingEvent](msg, events.TopicBookingCreated)
	if !ok {
		return
	}

	if err := c.mailer.SendBookingConfirmation(event); err != nil {
		log.Error().Err(err).Str("bookingID", event.BookingID).Msg("failed to send booking confirmation")
	}
}

func (c *Consumer) handleBookingCancelled(msg kafkaGo.Message) {
	event, ok := decode[events.BookingEvent](msg, events.TopicBookingCancelled)
	if !ok {
		return
	}

	if err := c.mailer.SendBookingCancellation(event); err != nil {
		log.Error().Err(err).Str("bookingID", event.BookingID).Msg("failed to send booking cancellation")
	}
}

func (c *Consumer) handleUserRegistered(msg kafkaGo.Message) {
	event, ok := decode[events.UserEvent](msg, events.TopicUserRegistered)
	if !ok {
		return
	}

	if err := c.mailer.SendVerification(event); err != nil {
		log.Error().Err(err).Str("userID", event.UserID).Msg("failed to send verification mail")
	}
}

func (c *Consumer) handleUserLoggedIn(msg kafkaGo.Message) {
	event, ok := decode[events.UserEvent](msg, events.TopicUserLoggedIn)
	if !ok {
		return
	}

	if err := c.mailer.SendLoginNotice(event); err != nil {
		log.Error().Err(err).Str("userID", event.UserID).Msg("failed to send login notice")
	}
}

func decode[T any](msg kafkaGo.Message, topic string) (T, bool) {
	decoded, err := kafka.DecodeKafkaMessage[T](msg)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to decode event")

		var zero T

		return zero, false
	}

	event, ok := decoded.Value.(T)
	if !ok {
		log.Error().Str("topic", topic).Msg("unexpected event payload type")

		var zero T

		return zero, false
	}

	return event, true
}
