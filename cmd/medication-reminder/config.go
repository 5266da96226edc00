package main

import (
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/events"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/notifications"
)

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	configurationFile
	envFile

	storageType
	storagePath
	storageDSN

	notificationPermission
	rescheduleOnStart

	messagingHost

	logLevel
)

type appConfig struct {
	Storage       kvstore.Config       `yaml:"storage"`
	Notifications notifications.Config `yaml:"notifications"`
	Events        events.Config        `yaml:"events"`
}
