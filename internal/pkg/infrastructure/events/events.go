package events

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sys/unix"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/pkg/types"
)

const (
	EventSource            string = "github.com/diwise/medication-reminder"
	ReminderFiredEventType string = "medication.reminderfired"
)

// ReminderFired is the payload published when a scheduled alarm goes off.
type ReminderFired struct {
	AlarmID        string    `json:"alarmId"`
	MedicationName string    `json:"medicationName,omitempty"`
	Dosage         string    `json:"dosage,omitempty"`
	Time           string    `json:"time,omitempty"`
	Title          string    `json:"title"`
	Text           string    `json:"body"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewReminderFired(r types.Reminder) *ReminderFired {
	return &ReminderFired{
		AlarmID:        r.ID,
		MedicationName: r.Data["medicationName"],
		Dosage:         r.Data["dosage"],
		Time:           r.Data["time"],
		Title:          r.Title,
		Text:           r.Body,
		Timestamp:      r.FiredAt.UTC(),
	}
}

func (r *ReminderFired) ContentType() string {
	return "application/json"
}
func (r *ReminderFired) TopicName() string {
	return "reminders.reminderFired"
}

type CloudEventSender struct {
	client      cloudevents.Client
	subscribers []SubscriberConfig
}

// NewCloudEventSender posts reminders to every subscriber registered for
// the reminder fired event type. Other notification types are ignored.
func NewCloudEventSender(cfg *Config) (*CloudEventSender, error) {
	c, err := cloudevents.NewClientHTTP(
		cehttp.WithRoundTripper(otelhttp.NewTransport(http.DefaultTransport)),
	)
	if err != nil {
		return nil, err
	}

	e := &CloudEventSender{
		client: c,
	}

	if cfg != nil {
		for _, n := range cfg.Notifications {
			if n.Type == ReminderFiredEventType {
				e.subscribers = append(e.subscribers, n.Subscribers...)
			}
		}
	}

	return e, nil
}

func (e *CloudEventSender) Name() string {
	return "cloudevents"
}

func (e *CloudEventSender) Deliver(ctx context.Context, r types.Reminder) error {
	if len(e.subscribers) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(r.FiredAt)
	event.SetSource(EventSource)
	event.SetType(ReminderFiredEventType)

	err := event.SetData(cloudevents.ApplicationJSON, NewReminderFired(r))
	if err != nil {
		return err
	}

	logger := logging.GetLoggerFromContext(ctx)

	var errs []error

	for _, s := range e.subscribers {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := e.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", s.Endpoint)
			errs = append(errs, fmt.Errorf("%s: %w", s.Endpoint, result))
		}
	}

	return errors.Join(errs...)
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}
