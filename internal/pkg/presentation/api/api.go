package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"

	"github.com/diwise/medication-reminder/internal/pkg/application/alarms"
	"github.com/diwise/medication-reminder/internal/pkg/application/medications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/metrics"
	"github.com/diwise/medication-reminder/pkg/types"
)

var tracer = otel.Tracer("medication-reminder/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, store medications.MedicationStore, svc alarms.AlarmService) *chi.Mux {
	log := logging.GetLoggerFromContext(ctx)
	validate := newValidator()

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/medications", func(r chi.Router) {
			r.Get("/", listMedicationsHandler(log, store))
			r.Post("/", createMedicationHandler(log, store, validate))
			r.Get("/{medicationID}", getMedicationHandler(log, store))
			r.Patch("/{medicationID}", patchMedicationHandler(log, store, validate))
			r.Delete("/{medicationID}", deleteMedicationHandler(log, store))
		})

		r.Route("/alarms", func(r chi.Router) {
			r.Get("/", getAlarmsHandler(log, svc))
			r.Post("/sync", rescheduleAlarmsHandler(log, svc))
			r.Delete("/notifications", cancelAllNotificationsHandler(log, svc))
			r.Patch("/{alarmID}", patchAlarmHandler(log, svc, validate))
			r.Post("/{alarmID}/notification", scheduleNotificationHandler(log, svc))
			r.Delete("/{alarmID}/notification", cancelNotificationHandler(log, svc))
		})
	})

	return router
}

func listMedicationsHandler(log zerolog.Logger, store medications.MedicationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "list-medications")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		meds := store.ListAll(ctx)

		err = writeJSON(w, http.StatusOK, meds)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to write medications")
		}
	}
}

func createMedicationHandler(log zerolog.Logger, store medications.MedicationStore, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-medication")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		req := createMedicationRequest{}
		err = decodeAndValidate(r.Body, &req, validate)
		if err != nil {
			requestLogger.Error().Err(err).Msg("invalid medication")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m, ok := store.Create(ctx, req.toNewMedication())
		if !ok {
			requestLogger.Error().Msg("unable to create medication")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Location", "/api/v0/medications/"+m.ID)
		err = writeJSON(w, http.StatusCreated, m)
	}
}

func getMedicationHandler(log zerolog.Logger, store medications.MedicationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-medication")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		medicationID := chi.URLParam(r, "medicationID")

		m, ok := store.GetByID(ctx, medicationID)
		if !ok {
			requestLogger.Debug().Str("medication_id", medicationID).Msg("medication not found")
			w.WriteHeader(http.StatusNotFound)
			return
		}

		err = writeJSON(w, http.StatusOK, m)
	}
}

func patchMedicationHandler(log zerolog.Logger, store medications.MedicationStore, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "patch-medication")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		medicationID := chi.URLParam(r, "medicationID")
		requestLogger = requestLogger.With().Str("medication_id", medicationID).Logger()

		req := updateMedicationRequest{}
		err = decodeAndValidate(r.Body, &req, validate)
		if err != nil {
			requestLogger.Error().Err(err).Msg("invalid medication update")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if _, ok := store.GetByID(ctx, medicationID); !ok {
			requestLogger.Debug().Msg("medication not found")
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if !store.Update(ctx, medicationID, req.toMedicationUpdate()) {
			requestLogger.Error().Msg("unable to update medication")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		m, _ := store.GetByID(ctx, medicationID)
		err = writeJSON(w, http.StatusOK, m)
	}
}

func deleteMedicationHandler(log zerolog.Logger, store medications.MedicationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-medication")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		medicationID := chi.URLParam(r, "medicationID")

		if !store.Delete(ctx, medicationID) {
			requestLogger.Error().Str("medication_id", medicationID).Msg("unable to delete medication")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func getAlarmsHandler(log zerolog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alarms")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = writeJSON(w, http.StatusOK, svc.DeriveActiveAlarms(ctx))
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to write alarms")
		}
	}
}

func patchAlarmHandler(log zerolog.Logger, svc alarms.AlarmService, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "toggle-alarm")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alarmID := chi.URLParam(r, "alarmID")

		req := toggleAlarmRequest{}
		err = decodeAndValidate(r.Body, &req, validate)
		if err != nil {
			requestLogger.Error().Err(err).Msg("invalid toggle request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if !svc.ToggleAlarm(ctx, alarmID, *req.Enabled) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func scheduleNotificationHandler(log zerolog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "schedule-notification")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alarmID := chi.URLParam(r, "alarmID")

		alarm, found := lo.Find(svc.DeriveActiveAlarms(ctx), func(a types.AlarmInfo) bool {
			return a.AlarmID == alarmID
		})
		if !found {
			requestLogger.Debug().Str("alarm_id", alarmID).Msg("no active alarm found")
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if !svc.ScheduleAlarm(ctx, alarm.MedicationName, alarm.Dosage, alarm.Time, alarm.AlarmID) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func cancelNotificationHandler(log zerolog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "cancel-notification")
		defer span.End()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		svc.CancelAlarm(ctx, chi.URLParam(r, "alarmID"))

		w.WriteHeader(http.StatusNoContent)
	}
}

func cancelAllNotificationsHandler(log zerolog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "cancel-all-notifications")
		defer span.End()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		svc.CancelAllAlarms(ctx)

		w.WriteHeader(http.StatusNoContent)
	}
}

func rescheduleAlarmsHandler(log zerolog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "reschedule-alarms")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		scheduled := svc.RescheduleAll(ctx)
		requestLogger.Info().Int("scheduled", scheduled).Msg("alarms rescheduled")

		err = writeJSON(w, http.StatusOK, rescheduleResponse{Scheduled: scheduled})
	}
}

func decodeAndValidate(body io.Reader, v any, validate *validator.Validate) error {
	err := json.NewDecoder(body).Decode(v)
	if err != nil {
		return err
	}

	return validate.Struct(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
