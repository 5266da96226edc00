package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/notifications"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[configurationFile] = writeConfig(is, t, configYaml)

	cfg, err := loadConfiguration(context.Background(), flags)
	is.NoErr(err)

	is.Equal(kvstore.TypeSQLite, cfg.Storage.Type)
	is.Equal("/var/lib/medications.db", cfg.Storage.Path)
	is.Equal(notifications.PermissionGranted, cfg.Notifications.Permission)
	is.Equal(1, len(cfg.Events.Notifications))
	is.Equal("http://api-notification:8990", cfg.Events.Notifications[0].Subscribers[0].Endpoint)
}

func TestFlagsOverrideConfigurationFile(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[configurationFile] = writeConfig(is, t, configYaml)
	flags[storageType] = kvstore.TypeMemory
	flags[notificationPermission] = notifications.PermissionDenied

	cfg, err := loadConfiguration(context.Background(), flags)
	is.NoErr(err)

	is.Equal(kvstore.TypeMemory, cfg.Storage.Type)
	is.Equal("/var/lib/medications.db", cfg.Storage.Path)
	is.Equal(notifications.PermissionDenied, cfg.Notifications.Permission)
}

func TestMissingConfigurationFileUsesDefaults(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[configurationFile] = filepath.Join(t.TempDir(), "nosuchfile.yaml")

	cfg, err := loadConfiguration(context.Background(), flags)
	is.NoErr(err)
	is.Equal("", cfg.Storage.Type)
}

func TestMalformedConfigurationFileFails(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[configurationFile] = writeConfig(is, t, "storage: [not, a, map")

	_, err := loadConfiguration(context.Background(), flags)
	is.True(err != nil)
}

func TestInitializeServesApi(t *testing.T) {
	is, ctx, svc := setupTest(t, &appConfig{Storage: kvstore.Config{Type: kvstore.TypeMemory}})
	defer svc.close(ctx)

	server := httptest.NewServer(svc.server.Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	is.NoErr(err)
	is.Equal(http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v0/medications")
	is.NoErr(err)
	defer resp.Body.Close()
	is.Equal(http.StatusOK, resp.StatusCode)

	meds := []any{}
	is.NoErr(json.NewDecoder(resp.Body).Decode(&meds))
	is.Equal(0, len(meds))
}

func TestInitializeWithUnsupportedNotifications(t *testing.T) {
	is, ctx, svc := setupTest(t, &appConfig{
		Storage:       kvstore.Config{Type: kvstore.TypeMemory},
		Notifications: notifications.Config{Unsupported: true},
	})
	defer svc.close(ctx)

	granted, err := svc.notifier.RequestPermission(ctx)
	is.NoErr(err)
	is.True(!granted)
}

func TestSinksWithoutBrokerOrSubscribers(t *testing.T) {
	is := is.New(t)

	svc := &service{}
	sinks, err := newSinks(context.Background(), defaultFlags(), &appConfig{}, svc)
	is.NoErr(err)

	is.Equal(1, len(sinks))
	is.Equal("log", sinks[0].Name())
	is.Equal(0, len(svc.closers))
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	is := is.New(t)

	t.Setenv("SERVICE_PORT", "9090")
	t.Setenv("RABBITMQ_HOST", "rabbitmq")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	flags := parseExternalConfig(zerolog.Nop(), defaultFlags())

	is.Equal("9090", flags[servicePort])
	is.Equal("rabbitmq", flags[messagingHost])
	is.Equal("info", flags[logLevel])
}

func TestInitializeFailsOnUnknownStorage(t *testing.T) {
	is := is.New(t)

	_, err := initialize(context.Background(), defaultFlags(), &appConfig{Storage: kvstore.Config{Type: "floppy"}})
	is.True(err != nil)
}

func setupTest(t *testing.T, cfg *appConfig) (*is.I, context.Context, *service) {
	is := is.New(t)
	ctx := context.Background()

	svc, err := initialize(ctx, defaultFlags(), cfg)
	is.NoErr(err)

	return is, ctx, svc
}

func writeConfig(is *is.I, t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(path, []byte(content), 0o600))
	return path
}

const configYaml string = `
storage:
  type: sqlite
  path: /var/lib/medications.db
notifications:
  permission: granted
events:
  notifications:
    - id: reminders
      name: Medication reminders
      type: medication.reminderfired
      subscribers:
      - endpoint: http://api-notification:8990
`
