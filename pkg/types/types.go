package types

import (
	"strings"
	"time"
)

type Medication struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Dosage        string    `json:"dosage"`
	Schedule      []string  `json:"schedule"`
	Quantity      int       `json:"quantity"`
	AlarmsEnabled bool      `json:"alarmsEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewMedication holds the fields a caller supplies on create. ID and
// CreatedAt are assigned by the store.
type NewMedication struct {
	Name          string   `json:"name"`
	Dosage        string   `json:"dosage"`
	Schedule      []string `json:"schedule"`
	Quantity      int      `json:"quantity"`
	AlarmsEnabled bool     `json:"alarmsEnabled"`
}

// MedicationUpdate is a partial update. A nil field keeps the stored value.
type MedicationUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Dosage        *string   `json:"dosage,omitempty"`
	Schedule      *[]string `json:"schedule,omitempty"`
	Quantity      *int      `json:"quantity,omitempty"`
	AlarmsEnabled *bool     `json:"alarmsEnabled,omitempty"`
}

func (u MedicationUpdate) Apply(m Medication) Medication {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Dosage != nil {
		m.Dosage = *u.Dosage
	}
	if u.Schedule != nil {
		m.Schedule = append([]string{}, (*u.Schedule)...)
	}
	if u.Quantity != nil {
		m.Quantity = *u.Quantity
	}
	if u.AlarmsEnabled != nil {
		m.AlarmsEnabled = *u.AlarmsEnabled
	}
	return m
}

type AlarmInfo struct {
	MedicationID   string `json:"medicationId"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Time           string `json:"time"`
	AlarmID        string `json:"alarmId"`
	Enabled        bool   `json:"enabled"`
}

const AlarmIDSeparator string = "_"

// AlarmID correlates one schedule slot of a medication with its
// notification registration, e.g. "1" and "08:00" becomes "1_0800".
func AlarmID(medicationID, time string) string {
	return medicationID + AlarmIDSeparator + strings.Replace(time, ":", "", 1)
}

// MedicationIDFromAlarmID returns everything before the first separator.
func MedicationIDFromAlarmID(alarmID string) string {
	id, _, _ := strings.Cut(alarmID, AlarmIDSeparator)
	return id
}

type Notification struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Hour    int               `json:"hour"`
	Minute  int               `json:"minute"`
	Repeats bool              `json:"repeats"`
	Data    map[string]string `json:"data,omitempty"`
}

type Reminder struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
	FiredAt time.Time         `json:"firedAt"`
}
