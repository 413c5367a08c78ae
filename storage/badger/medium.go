package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/satchel/storage"
)

// medium wraps a BadgerDB instance behind the storage.Medium contract.
type medium struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.Medium = (*medium)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB-backed medium at the specified path.
// Creates the directory if it doesn't exist.
func Open(path string) (storage.Medium, error) {
	return open(path, false)
}

// OpenMemory opens a medium backed by an in-memory BadgerDB instance.
// Nothing survives Close; intended for tests and ephemeral stores.
func OpenMemory() (storage.Medium, error) {
	return open("", true)
}

func open(path string, inMemory bool) (*medium, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(path, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(path)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	logger := slog.Default()
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &medium{
		db:     db,
		logger: logger,
	}, nil
}

func (m *medium) Get(ctx context.Context, key string) ([]byte, error) {
	if m.db.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var value []byte
	err := m.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (m *medium) Set(ctx context.Context, key string, value []byte) error {
	if m.db.IsClosed() {
		return storage.ErrStorageClosed
	}

	return m.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), value)
	})
}

func (m *medium) Remove(ctx context.Context, key string) error {
	if m.db.IsClosed() {
		return storage.ErrStorageClosed
	}

	return m.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(key))
	})
}

func (m *medium) Clear(ctx context.Context) error {
	if m.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return m.db.DropAll()
}

func (m *medium) Close() error {
	if m.db.IsClosed() {
		return nil
	}
	return m.db.Close()
}
