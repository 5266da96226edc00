package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/diwise/medication-reminder/internal/pkg/application/alarms"
	"github.com/diwise/medication-reminder/internal/pkg/application/medications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/router"
	"github.com/diwise/medication-reminder/pkg/types"
)

func TestHealth(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestMetrics(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/metrics", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "go_goroutines"))
}

func TestCreateAndGetMedication(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/medications", strings.NewReader(aspirinJson))
	is.Equal(resp.StatusCode, http.StatusCreated)

	created := types.Medication{}
	is.NoErr(json.Unmarshal([]byte(body), &created))
	is.True(created.ID != "")
	is.Equal("Aspirin", created.Name)
	is.Equal("/api/v0/medications/"+created.ID, resp.Header.Get("Location"))

	resp, body = testRequest(is, server, http.MethodGet, "/api/v0/medications/"+created.ID, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	fetched := types.Medication{}
	is.NoErr(json.Unmarshal([]byte(body), &fetched))
	is.Equal(created, fetched)

	resp, body = testRequest(is, server, http.MethodGet, "/api/v0/medications", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	all := []types.Medication{}
	is.NoErr(json.Unmarshal([]byte(body), &all))
	is.Equal(1, len(all))
}

func TestListMedicationsOnEmptyStoreIsEmptyArray(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/medications", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal("[]", body)
}

func TestCreateInvalidMedicationReturns400(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	for _, b := range []string{
		`{not json`,
		`{"dosage":"100mg","schedule":["08:00"]}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":["8:00"]}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":["24:00"]}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":["08:00"],"quantity":-1}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":["+8:00"],"quantity":30}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":["08:+5"],"quantity":30}`,
		`{"name":"Aspirin","dosage":"100mg","schedule":[],"quantity":30}`,
		`{"name":"Aspirin","dosage":"100mg","quantity":30}`,
	} {
		resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/medications", strings.NewReader(b))
		is.Equal(resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGetUnknownMedicationReturns404(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/api/v0/medications/nosuchmedication", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestPatchMedication(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	created := createMedication(is, server, aspirinJson)

	resp, body := testRequest(is, server, http.MethodPatch, "/api/v0/medications/"+created.ID, strings.NewReader(`{"dosage":"500mg","schedule":["07:00"]}`))
	is.Equal(resp.StatusCode, http.StatusOK)

	updated := types.Medication{}
	is.NoErr(json.Unmarshal([]byte(body), &updated))
	is.Equal("Aspirin", updated.Name)
	is.Equal("500mg", updated.Dosage)
	is.Equal([]string{"07:00"}, updated.Schedule)

	resp, _ = testRequest(is, server, http.MethodPatch, "/api/v0/medications/nosuchmedication", strings.NewReader(`{"dosage":"500mg"}`))
	is.Equal(resp.StatusCode, http.StatusNotFound)

	for _, b := range []string{`{"schedule":["7"]}`, `{"schedule":[]}`, `{"schedule":["-0:30"]}`} {
		resp, _ = testRequest(is, server, http.MethodPatch, "/api/v0/medications/"+created.ID, strings.NewReader(b))
		is.Equal(resp.StatusCode, http.StatusBadRequest)
	}

	resp, body = testRequest(is, server, http.MethodGet, "/api/v0/medications/"+created.ID, nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	unchanged := types.Medication{}
	is.NoErr(json.Unmarshal([]byte(body), &unchanged))
	is.Equal([]string{"07:00"}, unchanged.Schedule)
}

func TestDeleteMedicationIsIdempotent(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	created := createMedication(is, server, aspirinJson)

	resp, _ := testRequest(is, server, http.MethodDelete, "/api/v0/medications/"+created.ID, nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, _ = testRequest(is, server, http.MethodDelete, "/api/v0/medications/"+created.ID, nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/medications/"+created.ID, nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestGetAlarms(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	created := createMedication(is, server, aspirinJson)
	createMedication(is, server, `{"name":"Ibuprofen","dosage":"200mg","schedule":["06:00"],"quantity":10,"alarmsEnabled":false}`)

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/alarms", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	active := []types.AlarmInfo{}
	is.NoErr(json.Unmarshal([]byte(body), &active))
	is.Equal(2, len(active))
	is.Equal(created.ID+"_0800", active[0].AlarmID)
	is.Equal(created.ID+"_2000", active[1].AlarmID)
}

func TestToggleAlarm(t *testing.T) {
	is, server, _ := setupTest(t)
	defer server.Close()

	created := createMedication(is, server, aspirinJson)

	resp, _ := testRequest(is, server, http.MethodPatch, "/api/v0/alarms/"+created.ID+"_0800", strings.NewReader(`{"enabled":false}`))
	is.Equal(resp.StatusCode, http.StatusNoContent)

	_, body := testRequest(is, server, http.MethodGet, "/api/v0/alarms", nil)
	is.Equal("[]", body)

	resp, _ = testRequest(is, server, http.MethodPatch, "/api/v0/alarms/42_0800", strings.NewReader(`{"enabled":true}`))
	is.Equal(resp.StatusCode, http.StatusNotFound)

	resp, _ = testRequest(is, server, http.MethodPatch, "/api/v0/alarms/"+created.ID+"_0800", strings.NewReader(`{}`))
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestScheduleAndCancelNotification(t *testing.T) {
	is, server, notifier := setupTest(t)
	defer server.Close()

	created := createMedication(is, server, aspirinJson)
	alarmID := created.ID + "_2000"

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/alarms/"+alarmID+"/notification", nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)

	is.Equal(1, len(notifier.ScheduleCalls()))
	n := notifier.ScheduleCalls()[0].N
	is.Equal(alarmID, n.ID)
	is.Equal(20, n.Hour)
	is.Equal("It's time to take: Aspirin - 100mg", n.Body)

	resp, _ = testRequest(is, server, http.MethodDelete, "/api/v0/alarms/"+alarmID+"/notification", nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)
	is.Equal(alarmID, notifier.CancelCalls()[0].ID)

	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/alarms/nosuchalarm/notification", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestScheduleNotificationWithoutPermissionFails(t *testing.T) {
	is, server, notifier := setupTest(t)
	defer server.Close()

	notifier.RequestPermissionFunc = func(ctx context.Context) (bool, error) {
		return false, nil
	}

	created := createMedication(is, server, aspirinJson)

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/alarms/"+created.ID+"_0800/notification", nil)
	is.Equal(resp.StatusCode, http.StatusInternalServerError)
	is.Equal(0, len(notifier.ScheduleCalls()))
}

func TestCancelAllNotificationsSwallowsErrors(t *testing.T) {
	is, server, notifier := setupTest(t)
	defer server.Close()

	notifier.CancelAllFunc = func(ctx context.Context) error {
		return errors.New("scheduler unavailable")
	}

	resp, _ := testRequest(is, server, http.MethodDelete, "/api/v0/alarms/notifications", nil)
	is.Equal(resp.StatusCode, http.StatusNoContent)
	is.Equal(1, len(notifier.CancelAllCalls()))
}

func TestSyncAlarms(t *testing.T) {
	is, server, notifier := setupTest(t)
	defer server.Close()

	createMedication(is, server, aspirinJson)

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/alarms/sync", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(`{"scheduled":2}`, body)
	is.Equal(1, len(notifier.CancelAllCalls()))
	is.Equal(2, len(notifier.ScheduleCalls()))
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, *alarms.NotifierMock) {
	is := is.New(t)
	ctx := context.Background()

	notifier := &alarms.NotifierMock{
		RequestPermissionFunc: func(ctx context.Context) (bool, error) {
			return true, nil
		},
		ScheduleFunc: func(ctx context.Context, n types.Notification) error {
			return nil
		},
		CancelFunc: func(ctx context.Context, id string) error {
			return nil
		},
		CancelAllFunc: func(ctx context.Context) error {
			return nil
		},
	}

	store := medications.New(kvstore.NewMemory())
	svc := alarms.New(store, notifier)

	r := RegisterHandlers(ctx, router.New("test-service"), store, svc)

	return is, httptest.NewServer(r), notifier
}

func createMedication(is *is.I, server *httptest.Server, body string) types.Medication {
	resp, b := testRequest(is, server, http.MethodPost, "/api/v0/medications", strings.NewReader(body))
	is.Equal(resp.StatusCode, http.StatusCreated)

	m := types.Medication{}
	is.NoErr(json.Unmarshal([]byte(b), &m))
	return m
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	is.NoErr(err)

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

const aspirinJson string = `{"name":"Aspirin","dosage":"100mg","schedule":["08:00","20:00"],"quantity":30,"alarmsEnabled":true}`
