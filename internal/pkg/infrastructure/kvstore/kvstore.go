package kvstore

import (
	"context"
	"errors"
	"fmt"
)

//go:generate moq -rm -out kvstore_mock.go . Store

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreFailed = errors.New("could not store value")
	ErrUnknownType = errors.New("unknown storage type")
)

const (
	TypeMemory   string = "memory"
	TypeBadger   string = "badger"
	TypeSQLite   string = "sqlite"
	TypePostgres string = "postgres"
)

type Config struct {
	Type string `yaml:"type"`
	// Path is the badger directory or the sqlite database file.
	Path string `yaml:"path"`
	// DSN is a postgres connection string.
	DSN string `yaml:"dsn"`
}

func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case TypeMemory, "":
		return NewMemory(), nil
	case TypeBadger:
		return NewBadger(ctx, cfg.Path)
	case TypeSQLite:
		return NewGorm(NewSQLiteConnector(ctx, cfg.Path))
	case TypePostgres:
		return NewJsonStore(ctx, cfg.DSN)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownType, cfg.Type)
}
