package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
)

type ConnectorFunc func() (*gorm.DB, error)

// NewSQLiteConnector connects to the sqlite database in path, or to a
// private in-memory database when path is empty.
func NewSQLiteConnector(ctx context.Context, path string) ConnectorFunc {
	log := logging.GetLoggerFromContext(ctx)

	dsn := "file::memory:"
	if path != "" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	}

	return func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.New(
				&logadapter{log: log.With().Str("database", dsn).Logger()},
				logger.Config{
					SlowThreshold:             time.Second,
					LogLevel:                  logger.Warn,
					IgnoreRecordNotFoundError: true,
					Colorful:                  false,
				},
			),
		})

		if err == nil {
			sqldb, _ := db.DB()
			sqldb.SetMaxOpenConns(1)
		}

		return db, err
	}
}

type entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "kv_entries"
}

type gormStore struct {
	db *gorm.DB
}

func NewGorm(connect ConnectorFunc) (Store, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&entry{})
	if err != nil {
		return nil, err
	}

	return &gormStore{
		db: impl,
	}, nil
}

func (g *gormStore) Get(ctx context.Context, key string) ([]byte, error) {
	e := entry{}

	err := g.db.WithContext(ctx).
		Where(&entry{Key: key}).
		First(&e).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	return e.Value, nil
}

func (g *gormStore) Set(ctx context.Context, key string, value []byte) error {
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry{Key: key, Value: value}).
		Error

	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

func (g *gormStore) Close() error {
	sqldb, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}

// logadapter provides a Printf interface to the gorm logger
// so that we can forward the log data to zerolog
type logadapter struct {
	log zerolog.Logger
}

func (adapter *logadapter) Printf(format string, args ...interface{}) {
	adapter.log.Info().Msgf(format, args...)
}
