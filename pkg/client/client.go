package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/pkg/types"
)

var ErrNotFound = errors.New("not found")

var tracer = otel.Tracer("medication-reminder-client")

type MedicationReminderClient interface {
	ListMedications(ctx context.Context) ([]types.Medication, error)
	GetMedication(ctx context.Context, id string) (types.Medication, error)
	CreateMedication(ctx context.Context, m types.NewMedication) (types.Medication, error)
	DeleteMedication(ctx context.Context, id string) error
	ListAlarms(ctx context.Context) ([]types.AlarmInfo, error)
	ToggleAlarm(ctx context.Context, alarmID string, enabled bool) error
	RescheduleAll(ctx context.Context) (int, error)
}

type mrClient struct {
	url        string
	httpClient http.Client
}

func New(serviceURL string) MedicationReminderClient {
	return &mrClient{
		url: strings.TrimSuffix(serviceURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *mrClient) ListMedications(ctx context.Context) ([]types.Medication, error) {
	var err error
	ctx, span := tracer.Start(ctx, "list-medications")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := []types.Medication{}
	err = c.do(ctx, http.MethodGet, "/api/v0/medications", nil, http.StatusOK, &result)

	return result, err
}

func (c *mrClient) GetMedication(ctx context.Context, id string) (types.Medication, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-medication")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := types.Medication{}
	err = c.do(ctx, http.MethodGet, "/api/v0/medications/"+url.PathEscape(id), nil, http.StatusOK, &result)

	return result, err
}

func (c *mrClient) CreateMedication(ctx context.Context, m types.NewMedication) (types.Medication, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-medication")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := types.Medication{}
	err = c.do(ctx, http.MethodPost, "/api/v0/medications", m, http.StatusCreated, &result)

	return result, err
}

func (c *mrClient) DeleteMedication(ctx context.Context, id string) error {
	var err error
	ctx, span := tracer.Start(ctx, "delete-medication")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = c.do(ctx, http.MethodDelete, "/api/v0/medications/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
	return err
}

func (c *mrClient) ListAlarms(ctx context.Context) ([]types.AlarmInfo, error) {
	var err error
	ctx, span := tracer.Start(ctx, "list-alarms")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := []types.AlarmInfo{}
	err = c.do(ctx, http.MethodGet, "/api/v0/alarms", nil, http.StatusOK, &result)

	return result, err
}

func (c *mrClient) ToggleAlarm(ctx context.Context, alarmID string, enabled bool) error {
	var err error
	ctx, span := tracer.Start(ctx, "toggle-alarm")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body := struct {
		Enabled bool `json:"enabled"`
	}{enabled}

	err = c.do(ctx, http.MethodPatch, "/api/v0/alarms/"+url.PathEscape(alarmID), body, http.StatusNoContent, nil)
	return err
}

func (c *mrClient) RescheduleAll(ctx context.Context) (int, error) {
	var err error
	ctx, span := tracer.Start(ctx, "reschedule-all")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := struct {
		Scheduled int `json:"scheduled"`
	}{}
	err = c.do(ctx, http.MethodPost, "/api/v0/alarms/sync", nil, http.StatusOK, &result)

	return result.Scheduled, err
}

func (c *mrClient) do(ctx context.Context, method, path string, body any, expectedStatus int, result any) error {
	log := logging.GetLoggerFromContext(ctx)

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	if resp.StatusCode != expectedStatus {
		log.Error().Msgf("request failed with status code %d", resp.StatusCode)
		return fmt.Errorf("%s %s: unexpected status code %d", method, path, resp.StatusCode)
	}

	if result == nil {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}
