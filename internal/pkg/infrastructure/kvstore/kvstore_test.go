package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestMemoryStore(t *testing.T) {
	is, ctx := testSetup(t)
	testGetSet(ctx, is, NewMemory(), "medications")
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	is, ctx := testSetup(t)
	s := NewMemory()

	value := []byte(`[1,2]`)
	is.NoErr(s.Set(ctx, "k", value))
	value[1] = '9'

	stored, err := s.Get(ctx, "k")
	is.NoErr(err)
	is.Equal(`[1,2]`, string(stored))
}

func TestBadgerInMemoryStore(t *testing.T) {
	is, ctx := testSetup(t)

	s, err := NewBadger(ctx, "")
	is.NoErr(err)
	defer s.Close()

	testGetSet(ctx, is, s, "medications")
}

func TestBadgerStorePersistsBetweenOpens(t *testing.T) {
	is, ctx := testSetup(t)
	dir := t.TempDir()

	s, err := NewBadger(ctx, dir)
	is.NoErr(err)
	is.NoErr(s.Set(ctx, "medications", []byte(`[{"id":"1"}]`)))
	is.NoErr(s.Close())

	s, err = NewBadger(ctx, dir)
	is.NoErr(err)
	defer s.Close()

	v, err := s.Get(ctx, "medications")
	is.NoErr(err)
	is.Equal(`[{"id":"1"}]`, string(v))
}

func TestSQLiteInMemoryStore(t *testing.T) {
	is, ctx := testSetup(t)

	s, err := NewGorm(NewSQLiteConnector(ctx, ""))
	is.NoErr(err)
	defer s.Close()

	testGetSet(ctx, is, s, "medications")
}

func TestSQLiteFileStore(t *testing.T) {
	is, ctx := testSetup(t)
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := Open(ctx, Config{Type: TypeSQLite, Path: path})
	is.NoErr(err)
	is.NoErr(s.Set(ctx, "medications", []byte(`[]`)))
	is.NoErr(s.Close())

	_, err = os.Stat(path)
	is.NoErr(err)

	s, err = Open(ctx, Config{Type: TypeSQLite, Path: path})
	is.NoErr(err)
	defer s.Close()

	v, err := s.Get(ctx, "medications")
	is.NoErr(err)
	is.Equal(`[]`, string(v))
}

func TestJsonStore(t *testing.T) {
	is, ctx := testSetup(t)

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.SkipNow()
	}

	s, err := NewJsonStore(ctx, dsn)
	if err != nil {
		t.SkipNow()
	}
	defer s.Close()

	testGetSet(ctx, is, s, "medications-"+uuid.NewString())
}

func TestOpenDefaultsToMemory(t *testing.T) {
	is, ctx := testSetup(t)

	s, err := Open(ctx, Config{})
	is.NoErr(err)

	_, ok := s.(*memory)
	is.True(ok)
}

func TestOpenUnknownType(t *testing.T) {
	is, ctx := testSetup(t)

	_, err := Open(ctx, Config{Type: "gurka"})
	is.True(errors.Is(err, ErrUnknownType))
}

func testGetSet(ctx context.Context, is *is.I, s Store, key string) {
	_, err := s.Get(ctx, key)
	is.True(errors.Is(err, ErrKeyNotFound))

	is.NoErr(s.Set(ctx, key, []byte(`[{"id":"1"}]`)))

	v, err := s.Get(ctx, key)
	is.NoErr(err)
	is.Equal(`[{"id":"1"}]`, compact(is, v))

	is.NoErr(s.Set(ctx, key, []byte(`[{"id":"1"},{"id":"2"}]`)))

	v, err = s.Get(ctx, key)
	is.NoErr(err)
	is.Equal(`[{"id":"1"},{"id":"2"}]`, compact(is, v))
}

// compact strips the whitespace postgres adds when returning jsonb
func compact(is *is.I, v []byte) string {
	buf := &bytes.Buffer{}
	is.NoErr(json.Compact(buf, v))
	return buf.String()
}

func testSetup(t *testing.T) (*is.I, context.Context) {
	return is.New(t), context.Background()
}
