package medications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/metrics"
	"github.com/diwise/medication-reminder/pkg/types"
)

// StorageKey is the key holding the whole medication collection.
const StorageKey string = "medications"

//go:generate moq -rm -out medicationstore_mock.go . MedicationStore

// MedicationStore is the single owner of the persisted medications. Failures
// are logged and reported as an empty result or false, never as errors.
type MedicationStore interface {
	ListAll(ctx context.Context) []types.Medication
	GetByID(ctx context.Context, id string) (types.Medication, bool)
	Create(ctx context.Context, m types.NewMedication) (types.Medication, bool)
	Update(ctx context.Context, id string, u types.MedicationUpdate) bool
	Delete(ctx context.Context, id string) bool
}

type Option func(*store)

func WithClock(now func() time.Time) Option {
	return func(s *store) {
		s.now = now
	}
}

type store struct {
	kv  kvstore.Store
	now func() time.Time
}

func New(kv kvstore.Store, opts ...Option) MedicationStore {
	s := &store{
		kv:  kv,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *store) ListAll(ctx context.Context) []types.Medication {
	log := logging.GetLoggerFromContext(ctx)

	b, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Error().Err(err).Msg("could not read medications")
		}
		return []types.Medication{}
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return []types.Medication{}
	}

	var meds []types.Medication
	err = json.Unmarshal(b, &meds)
	if err != nil {
		log.Error().Err(err).Msg("could not decode stored medications")
		return []types.Medication{}
	}

	if meds == nil {
		return []types.Medication{}
	}

	return meds
}

func (s *store) GetByID(ctx context.Context, id string) (types.Medication, bool) {
	for _, m := range s.ListAll(ctx) {
		if m.ID == id {
			return m, true
		}
	}

	return types.Medication{}, false
}

func (s *store) Create(ctx context.Context, nm types.NewMedication) (types.Medication, bool) {
	log := logging.GetLoggerFromContext(ctx)

	// collisions within the same millisecond are not detected
	now := s.now().UTC().Truncate(time.Millisecond)

	schedule := append([]string{}, nm.Schedule...)

	m := types.Medication{
		ID:            strconv.FormatInt(now.UnixMilli(), 10),
		Name:          nm.Name,
		Dosage:        nm.Dosage,
		Schedule:      schedule,
		Quantity:      nm.Quantity,
		AlarmsEnabled: nm.AlarmsEnabled,
		CreatedAt:     now,
	}

	meds := append(s.ListAll(ctx), m)

	err := s.persist(ctx, meds)
	record("create", err == nil)
	if err != nil {
		log.Error().Err(err).Msg("could not save medication")
		return types.Medication{}, false
	}

	log.Debug().Str("medication_id", m.ID).Msg("medication created")

	return m, true
}

func (s *store) Update(ctx context.Context, id string, u types.MedicationUpdate) bool {
	log := logging.GetLoggerFromContext(ctx)

	meds := s.ListAll(ctx)

	for i := range meds {
		if meds[i].ID != id {
			continue
		}

		meds[i] = u.Apply(meds[i])

		err := s.persist(ctx, meds)
		record("update", err == nil)
		if err != nil {
			log.Error().Err(err).Str("medication_id", id).Msg("could not update medication")
			return false
		}

		return true
	}

	log.Debug().Str("medication_id", id).Msg("medication to update not found")
	record("update", false)

	return false
}

func (s *store) Delete(ctx context.Context, id string) bool {
	log := logging.GetLoggerFromContext(ctx)

	meds := s.ListAll(ctx)
	filtered := make([]types.Medication, 0, len(meds))

	for _, m := range meds {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}

	err := s.persist(ctx, filtered)
	record("delete", err == nil)
	if err != nil {
		log.Error().Err(err).Str("medication_id", id).Msg("could not delete medication")
		return false
	}

	return true
}

// persist rewrites the entire collection.
func (s *store) persist(ctx context.Context, meds []types.Medication) error {
	b, err := json.Marshal(meds)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, StorageKey, b)
}

func record(operation string, ok bool) {
	metrics.StoreOperations.WithLabelValues(operation, metrics.Result(ok)).Inc()
}
