package fs

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Storage is a file system interface to host uploaded media.
type Storage interface {
	// FileSystem must be implemented to in order to pass Storage interface to HTTP file server.
	http.FileSystem

	// Create will create a new file from reader
	Create(ctx context.Context, name string, reader io.Reader) (int64, error)

	// Delete deletes the file
	Delete(ctx context.Context, name string) error

	// URL returns a public link to the file
	URL(name string) string
}

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

type LocalConfig struct {
	// DataDir is a path to a directory to keep uploaded files
	DataDir string `toml:"data_dir"`
}

type Config struct {
	// Type is the type of file system to use
	Type  string      `toml:"type"`
	Local LocalConfig `toml:"local"`
	S3    S3Config    `toml:"s3"`
}

// New creates the storage selected by the config.
// baseURL is where local files are served from.
func New(cfg Config, baseURL string) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		local, err := NewLocal(cfg.Local.DataDir, baseURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create local storage")
		}
		return local, nil
	case TypeS3:
		s3, err := NewS3(cfg.S3)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create s3 storage")
		}
		return s3, nil
	default:
		return nil, errors.Errorf("unknown storage type: %s", cfg.Type)
	}
}
