package db

import (
	"github.com/pkg/errors"
)

// Open creates the storage backend selected by the configuration.
func Open(config *Config) (Storage, error) {
	switch config.Backend {
	case "", BackendBadger:
		storage, err := NewBadger(config)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendPostgres:
		storage, err := NewPostgres(config)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, errors.Errorf("unsupported database backend %q", config.Backend)
	}
}
