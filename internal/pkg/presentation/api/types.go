package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/diwise/medication-reminder/internal/pkg/application/alarms"
	"github.com/diwise/medication-reminder/pkg/types"
)

type createMedicationRequest struct {
	Name          string   `json:"name" validate:"required"`
	Dosage        string   `json:"dosage" validate:"required"`
	Schedule      []string `json:"schedule" validate:"required,min=1,dive,timeofday"`
	Quantity      int      `json:"quantity" validate:"gt=0"`
	AlarmsEnabled bool     `json:"alarmsEnabled"`
}

func (r createMedicationRequest) toNewMedication() types.NewMedication {
	return types.NewMedication{
		Name:          r.Name,
		Dosage:        r.Dosage,
		Schedule:      r.Schedule,
		Quantity:      r.Quantity,
		AlarmsEnabled: r.AlarmsEnabled,
	}
}

type updateMedicationRequest struct {
	Name          *string   `json:"name" validate:"omitempty,min=1"`
	Dosage        *string   `json:"dosage" validate:"omitempty,min=1"`
	Schedule      *[]string `json:"schedule" validate:"omitempty,min=1,dive,timeofday"`
	Quantity      *int      `json:"quantity" validate:"omitempty,gt=0"`
	AlarmsEnabled *bool     `json:"alarmsEnabled"`
}

func (r updateMedicationRequest) toMedicationUpdate() types.MedicationUpdate {
	return types.MedicationUpdate{
		Name:          r.Name,
		Dosage:        r.Dosage,
		Schedule:      r.Schedule,
		Quantity:      r.Quantity,
		AlarmsEnabled: r.AlarmsEnabled,
	}
}

type toggleAlarmRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type rescheduleResponse struct {
	Scheduled int `json:"scheduled"`
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, _, err := alarms.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})

	return v
}
