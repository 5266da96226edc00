package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
)

const jsonStoreTable string = "medication_reminder_kv"

type jsonStore struct {
	db *pgxpool.Pool
}

// NewJsonStore keeps each value as a JSONB document in postgres.
func NewJsonStore(ctx context.Context, connStr string) (Store, error) {
	p, err := NewPool(ctx, connStr)
	if err != nil {
		return nil, err
	}

	s := &jsonStore{db: p}

	err = s.Initialize(ctx)
	if err != nil {
		p.Close()
		return nil, err
	}

	return s, nil
}

func NewPool(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

func (s *jsonStore) Initialize(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key			TEXT	NOT NULL PRIMARY KEY,
		data		JSONB	NULL,
		created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
		modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP);`, jsonStoreTable)

	_, err := s.db.Exec(ctx, ddl)
	return err
}

func (s *jsonStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := pgx.NamedArgs{
		"key": key,
	}

	sql := fmt.Sprintf(`SELECT data FROM %s WHERE key=@key`, jsonStoreTable)

	var data json.RawMessage
	err := s.db.QueryRow(ctx, sql, args).Scan(&data)
	if err != nil {
		log := logging.GetLoggerFromContext(ctx)
		log.Debug().Err(err).Str("key", key).Msg("could not get value")

		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	return data, nil
}

func (s *jsonStore) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: value is not valid json", ErrStoreFailed)
	}

	args := pgx.NamedArgs{
		"key":  key,
		"data": string(value),
	}

	upsert := fmt.Sprintf(`INSERT INTO %s (key, data) VALUES (@key, @data)
						   ON CONFLICT (key)
						   DO UPDATE SET data=EXCLUDED.data, modified_on=NOW();`, jsonStoreTable)

	_, err := s.db.Exec(ctx, upsert, args)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

func (s *jsonStore) Close() error {
	s.db.Close()
	return nil
}
