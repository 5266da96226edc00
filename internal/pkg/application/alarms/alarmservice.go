package alarms

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/diwise/medication-reminder/internal/pkg/application/medications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/metrics"
	"github.com/diwise/medication-reminder/pkg/types"
)

var tracer = otel.Tracer("medication-reminder/alarms")

const NotificationTitle string = "💊 Time for your medication"

type AlarmService interface {
	DeriveActiveAlarms(ctx context.Context) []types.AlarmInfo
	ToggleAlarm(ctx context.Context, alarmID string, enabled bool) bool
	ScheduleAlarm(ctx context.Context, medicationName, dosage, time, alarmID string) bool
	CancelAlarm(ctx context.Context, alarmID string)
	CancelAllAlarms(ctx context.Context)
	RescheduleAll(ctx context.Context) int
}

//go:generate moq -rm -out notifier_mock.go . Notifier

// Notifier is the platform capability that registers time triggered local
// notifications. Init must be called once before any other method.
type Notifier interface {
	Init(ctx context.Context) error
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, n types.Notification) error
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
}

type alarmSvc struct {
	store    medications.MedicationStore
	notifier Notifier
}

func New(s medications.MedicationStore, n Notifier) AlarmService {
	return &alarmSvc{
		store:    s,
		notifier: n,
	}
}

func (svc *alarmSvc) DeriveActiveAlarms(ctx context.Context) []types.AlarmInfo {
	enabled := lo.Filter(svc.store.ListAll(ctx), func(m types.Medication, _ int) bool {
		return m.AlarmsEnabled
	})

	alarms := lo.FlatMap(enabled, func(m types.Medication, _ int) []types.AlarmInfo {
		return lo.Map(m.Schedule, func(t string, _ int) types.AlarmInfo {
			return types.AlarmInfo{
				MedicationID:   m.ID,
				MedicationName: m.Name,
				Dosage:         m.Dosage,
				Time:           t,
				AlarmID:        types.AlarmID(m.ID, t),
				Enabled:        m.AlarmsEnabled,
			}
		})
	})

	sort.SliceStable(alarms, func(i, j int) bool {
		return alarms[i].Time < alarms[j].Time
	})

	return alarms
}

// ToggleAlarm switches every alarm of the medication encoded in alarmID,
// not only the time slot the id refers to.
func (svc *alarmSvc) ToggleAlarm(ctx context.Context, alarmID string, enabled bool) bool {
	log := logging.GetLoggerFromContext(ctx).With().Str("alarm_id", alarmID).Logger()

	medicationID := types.MedicationIDFromAlarmID(alarmID)

	if _, ok := svc.store.GetByID(ctx, medicationID); !ok {
		log.Debug().Msgf("no medication %s found for alarm", medicationID)
		return false
	}

	ok := svc.store.Update(ctx, medicationID, types.MedicationUpdate{AlarmsEnabled: &enabled})
	if !ok {
		log.Error().Msg("could not toggle alarm")
	}

	return ok
}

func (svc *alarmSvc) ScheduleAlarm(ctx context.Context, medicationName, dosage, t, alarmID string) bool {
	var err error

	ctx, span := tracer.Start(ctx, "schedule-alarm")
	span.SetAttributes(attribute.String("alarm_id", alarmID), attribute.String("time", t))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetLoggerFromContext(ctx).With().Str("alarm_id", alarmID).Logger()

	if !svc.requestPermission(ctx) {
		log.Info().Msg("notification permission not granted")
		metrics.AlarmRegistrations.WithLabelValues("denied").Inc()
		return false
	}

	hour, minute, err := ParseTimeOfDay(t)
	if err != nil {
		log.Error().Err(err).Msg("could not schedule alarm")
		metrics.AlarmRegistrations.WithLabelValues(metrics.Result(false)).Inc()
		return false
	}

	err = svc.notifier.Schedule(ctx, types.Notification{
		ID:      alarmID,
		Title:   NotificationTitle,
		Body:    fmt.Sprintf("It's time to take: %s - %s", medicationName, dosage),
		Hour:    hour,
		Minute:  minute,
		Repeats: true,
		Data: map[string]string{
			"medicationName": medicationName,
			"dosage":         dosage,
			"time":           t,
		},
	})

	metrics.AlarmRegistrations.WithLabelValues(metrics.Result(err == nil)).Inc()

	if err != nil {
		log.Error().Err(err).Msg("could not schedule alarm")
		return false
	}

	log.Info().Msgf("alarm scheduled for %s", t)

	return true
}

func (svc *alarmSvc) CancelAlarm(ctx context.Context, alarmID string) {
	err := svc.notifier.Cancel(ctx, alarmID)
	if err != nil {
		log := logging.GetLoggerFromContext(ctx)
		log.Error().Err(err).Str("alarm_id", alarmID).Msg("could not cancel alarm")
	}
}

func (svc *alarmSvc) CancelAllAlarms(ctx context.Context) {
	err := svc.notifier.CancelAll(ctx)
	if err != nil {
		log := logging.GetLoggerFromContext(ctx)
		log.Error().Err(err).Msg("could not cancel all alarms")
	}
}

// RescheduleAll replaces every registration with the currently derived
// alarms. Registrations are otherwise never kept in sync with the store.
func (svc *alarmSvc) RescheduleAll(ctx context.Context) int {
	var err error

	ctx, span := tracer.Start(ctx, "reschedule-all")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	svc.CancelAllAlarms(ctx)

	alarms := svc.DeriveActiveAlarms(ctx)

	scheduled := 0
	for _, a := range alarms {
		if svc.ScheduleAlarm(ctx, a.MedicationName, a.Dosage, a.Time, a.AlarmID) {
			scheduled++
		}
	}

	if scheduled < len(alarms) {
		err = fmt.Errorf("%d of %d alarms could not be scheduled", len(alarms)-scheduled, len(alarms))
	}

	span.SetAttributes(attribute.Int("scheduled", scheduled))

	return scheduled
}

func (svc *alarmSvc) requestPermission(ctx context.Context) bool {
	granted, err := svc.notifier.RequestPermission(ctx)
	if err != nil {
		log := logging.GetLoggerFromContext(ctx)
		log.Error().Err(err).Msg("could not request notification permission")
		return false
	}
	return granted
}

// ParseTimeOfDay parses a zero padded 24 hour HH:MM string.
func ParseTimeOfDay(t string) (int, int, error) {
	h, m, ok := strings.Cut(t, ":")
	if !ok || !twoDigits(h) || !twoDigits(m) {
		return 0, 0, fmt.Errorf("malformed time %q, expected HH:MM", t)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed hour in %q", t)
	}

	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed minute in %q", t)
	}

	return hour, minute, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
