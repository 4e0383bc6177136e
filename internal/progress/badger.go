package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const badgerKeyPrefix = "progress:"

// BadgerStore keeps progress under progress:<user> keys
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a badger database in dir. An empty dir runs badger
// in memory.
func NewBadgerStore(dir string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(newBadgerLogger(logger))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(userID string) []byte {
	return []byte(badgerKeyPrefix + userID)
}

func (s *BadgerStore) Load(_ context.Context, userID string) (Progress, error) {
	p := Default()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decode(val)
			p = decoded
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to load progress for %s: %w", userID, err)
	}
	return p, nil
}

func (s *BadgerStore) Save(_ context.Context, userID string, p Progress) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(userID), data)
	}); err != nil {
		return fmt.Errorf("failed to save progress for %s: %w", userID, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)

type badgerLogger struct {
	logger *zap.Logger
}

func newBadgerLogger(l *zap.Logger) *badgerLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &badgerLogger{logger: l.Named("badger")}
}

// Debugf implements badger.Logger.
func (l *badgerLogger) Debugf(format string, a ...any) {
	l.logger.Debug(fmt.Sprintf(format, a...))
}

// Errorf implements badger.Logger.
func (l *badgerLogger) Errorf(format string, a ...any) {
	l.logger.Error(fmt.Sprintf(format, a...))
}

// Infof implements badger.Logger.
func (l *badgerLogger) Infof(format string, a ...any) {
	l.logger.Info(fmt.Sprintf(format, a...))
}

// Warningf implements badger.Logger.
func (l *badgerLogger) Warningf(format string, a ...any) {
	l.logger.Warn(fmt.Sprintf(format, a...))
}

var _ badger.Logger = (*badgerLogger)(nil)
