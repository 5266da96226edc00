package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"

	"github.com/diwise/medication-reminder/internal/pkg/application/alarms"
	"github.com/diwise/medication-reminder/internal/pkg/application/medications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/events"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/notifications"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/router"
	"github.com/diwise/medication-reminder/internal/pkg/presentation/api"
)

const serviceName string = "medication-reminder"

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		configurationFile: "/opt/diwise/config/medication-reminder.yaml",
		envFile:           ".env",

		storageType: "",
		storagePath: "",
		storageDSN:  "",

		notificationPermission: "",
		rescheduleOnStart:      "true",

		messagingHost: "",

		logLevel: "info",
	}
}

func main() {
	flags := parseExternalConfig(log.Logger, defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion, flags[logLevel])
	logger.Info().Msg("starting up ...")

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	cfg, err := loadConfiguration(ctx, flags)
	exitIf(err, logger, "could not load configuration")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := initialize(ctx, flags, cfg)
	exitIf(err, logger, "failed to initialize service")

	err = svc.run(ctx)
	exitIf(err, logger, "service stopped with error")
}

type service struct {
	server   *http.Server
	alarms   alarms.AlarmService
	notifier alarms.Notifier
	closers  []io.Closer
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig) (*service, error) {
	log := logging.GetLoggerFromContext(ctx)

	svc := &service{}

	kv, err := kvstore.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not open %s storage: %w", cfg.Storage.Type, err)
	}
	svc.closers = append(svc.closers, kv)

	store := medications.New(kv)

	sinks, err := newSinks(ctx, flags, cfg, svc)
	if err != nil {
		svc.close(ctx)
		return nil, err
	}

	if cfg.Notifications.Unsupported {
		svc.notifier = notifications.NewUnsupported()
	} else {
		svc.notifier = notifications.NewLocal(
			notifications.WithPermission(cfg.Notifications.Permission),
			notifications.WithSinks(sinks...),
		)
	}

	err = svc.notifier.Init(ctx)
	if err != nil {
		svc.close(ctx)
		return nil, fmt.Errorf("could not initialize notifications: %w", err)
	}

	svc.alarms = alarms.New(store, svc.notifier)

	r := api.RegisterHandlers(ctx, router.New(serviceName), store, svc.alarms)

	svc.server = &http.Server{
		Addr:              net.JoinHostPort(flags[listenAddress], flags[servicePort]),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if flags[rescheduleOnStart] == "true" {
		scheduled := svc.alarms.RescheduleAll(ctx)
		log.Info().Int("scheduled", scheduled).Msg("alarms registered from stored medications")
	}

	return svc, nil
}

func newSinks(ctx context.Context, flags flagMap, cfg *appConfig, svc *service) ([]notifications.Sink, error) {
	sinks := []notifications.Sink{notifications.LogSink{}}

	if len(cfg.Events.Notifications) > 0 {
		sender, err := events.NewCloudEventSender(&cfg.Events)
		if err != nil {
			return nil, fmt.Errorf("could not create cloud event sender: %w", err)
		}
		sinks = append(sinks, sender)
	}

	// The broker connection is configured by the RABBITMQ_* variables
	if flags[messagingHost] != "" {
		messenger, err := messaging.Initialize(
			messaging.LoadConfiguration(serviceName, logging.GetLoggerFromContext(ctx)),
		)
		if err != nil {
			return nil, fmt.Errorf("could not initialize messaging: %w", err)
		}

		publisher := events.NewAMQPPublisher(messenger)
		sinks = append(sinks, publisher)
		svc.closers = append(svc.closers, publisher)
	}

	return sinks, nil
}

func (svc *service) run(ctx context.Context) error {
	log := logging.GetLoggerFromContext(ctx)
	defer svc.close(ctx)

	errs := make(chan error, 1)

	go func() {
		log.Info().Str("addr", svc.server.Addr).Msg("starting to listen for connections")
		errs <- svc.server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return svc.server.Shutdown(shutdownCtx)
}

func (svc *service) close(ctx context.Context) {
	log := logging.GetLoggerFromContext(ctx)

	if svc.notifier != nil {
		svc.notifier.CancelAll(ctx)
	}

	for _, c := range svc.closers {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("close failed")
		}
	}
}

func loadConfiguration(ctx context.Context, flags flagMap) (*appConfig, error) {
	cfg := &appConfig{}

	log := logging.GetLoggerFromContext(ctx)

	f, err := os.Open(flags[configurationFile])
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Msgf("no configuration file found at %s, using defaults", flags[configurationFile])
	} else if err != nil {
		return nil, err
	} else {
		cfg, err = parseExternalConfigFile(f)
		if err != nil {
			return nil, err
		}
	}

	overrideIfSet := func(target *string, f flagType) {
		if flags[f] != "" {
			*target = flags[f]
		}
	}

	overrideIfSet(&cfg.Storage.Type, storageType)
	overrideIfSet(&cfg.Storage.Path, storagePath)
	overrideIfSet(&cfg.Storage.DSN, storageDSN)
	overrideIfSet(&cfg.Notifications.Permission, notificationPermission)

	return cfg, nil
}

func parseExternalConfigFile(cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseExternalConfig(logger zerolog.Logger, flags flagMap) flagMap {
	flags[envFile] = env.GetVariableOrDefault(logger, "ENV_FILE", flags[envFile])

	// A missing .env file is fine, variables may come from the environment
	if err := godotenv.Load(flags[envFile]); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load %s: %s\n", flags[envFile], err.Error())
	}

	// Allow environment variables to override certain defaults
	flags[listenAddress] = env.GetVariableOrDefault(logger, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = env.GetVariableOrDefault(logger, "SERVICE_PORT", flags[servicePort])
	flags[configurationFile] = env.GetVariableOrDefault(logger, "CONFIG_FILE", flags[configurationFile])

	flags[storageType] = env.GetVariableOrDefault(logger, "STORAGE_TYPE", flags[storageType])
	flags[storagePath] = env.GetVariableOrDefault(logger, "STORAGE_PATH", flags[storagePath])
	flags[storageDSN] = env.GetVariableOrDefault(logger, "POSTGRES_DSN", flags[storageDSN])

	flags[notificationPermission] = env.GetVariableOrDefault(logger, "NOTIFICATION_PERMISSION", flags[notificationPermission])
	flags[rescheduleOnStart] = env.GetVariableOrDefault(logger, "RESCHEDULE_ON_START", flags[rescheduleOnStart])
	flags[messagingHost] = env.GetVariableOrDefault(logger, "RABBITMQ_HOST", flags[messagingHost])
	flags[logLevel] = env.GetVariableOrDefault(logger, "LOG_LEVEL", flags[logLevel])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "medication reminder configuration file", apply(configurationFile))
	flag.Func("storage", "storage backend (memory, badger, sqlite, postgres)", apply(storageType))
	flag.Func("path", "database path for badger and sqlite", apply(storagePath))
	flag.Func("permission", "notification permission policy (granted, denied)", apply(notificationPermission))
	flag.Parse()

	return flags
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Error().Err(err).Msg(msg)
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
