package store

import (
	"fmt"

	"uk.co.dudmesh.ledger/internal/model"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config interface {
	StoreDriver() string
}

// Store holds every account record. Records passed in or returned are copies;
// changes become visible only through Insert and Update.
type Store interface {
	Insert(user *model.User) error
	ByLogin(login string) (*model.User, error)
	ByID(id model.UserID) (*model.User, error)
	// ByPhone returns the earliest inserted record carrying phone.
	ByPhone(phone string) (*model.User, error)
	// Update writes all users or none of them.
	Update(users ...*model.User) error
	Close() error
}

func Open(config Config) (Store, error) {
	switch config.StoreDriver() {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		store, err := NewSQLiteStore()
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrorUnknownStoreDriver, config.StoreDriver())
	}
}
