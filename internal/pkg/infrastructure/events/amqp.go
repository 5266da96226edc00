package events

import (
	"context"

	"github.com/diwise/messaging-golang/pkg/messaging"

	"github.com/diwise/medication-reminder/pkg/types"
)

// AMQPPublisher publishes fired reminders on the message broker topic
// exchange, routed by ReminderFired.TopicName.
type AMQPPublisher struct {
	messenger messaging.MsgContext
}

func NewAMQPPublisher(messenger messaging.MsgContext) *AMQPPublisher {
	return &AMQPPublisher{
		messenger: messenger,
	}
}

func (p *AMQPPublisher) Name() string {
	return "amqp"
}

func (p *AMQPPublisher) Deliver(ctx context.Context, r types.Reminder) error {
	return p.messenger.PublishOnTopic(ctx, NewReminderFired(r))
}

func (p *AMQPPublisher) Close() error {
	p.messenger.Close()
	return nil
}
