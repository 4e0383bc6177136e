package progress

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Drivers lists the accepted values of Options.Driver
var Drivers = []string{DriverMemory, DriverSQLite, DriverBadger}

// Options selects and locates a Store
type Options struct {
	Driver string
	// DSN is the sqlite database path. Empty means <Dir>/progress.db.
	DSN string
	// Dir holds on-disk data. Badger uses <Dir>/badger.
	Dir string
}

// Open builds the Store named by opts.Driver
func Open(opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = filepath.Join(opts.Dir, "progress.db")
		}
		return NewSQLiteStore(dsn)
	case DriverBadger:
		if opts.Dir == "" {
			return NewBadgerStore("", logger)
		}
		return NewBadgerStore(filepath.Join(opts.Dir, "badger"), logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
