package fs

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LocalPrefix is where local uploads are served from when no base URL is configured.
const LocalPrefix = "/uploads"

// Local keeps uploads in a directory on disk.
type Local struct {
	http.FileSystem
	baseURL string
	rootDir string
}

func NewLocal(rootDir string, baseURL string) (*Local, error) {
	if rootDir == "" {
		return nil, errors.New("data directory can't be empty")
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		baseURL = LocalPrefix
	}

	return &Local{
		FileSystem: http.Dir(rootDir),
		baseURL:    baseURL,
		rootDir:    rootDir,
	}, nil
}

func (l *Local) Create(ctx context.Context, name string, reader io.Reader) (int64, error) {
	var (
		logger   = log.WithField("name", name)
		filePath = l.fullPath(name)
		dir      = filepath.Dir(filePath)
	)

	logger.Debugf("creating directory: %s", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "failed to create upload dir: %s", dir)
	}

	logger.Debugf("copying to: %s", filePath)
	written, err := l.copyFile(reader, filePath)
	if err != nil {
		if rmErr := os.Remove(filePath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.WithError(rmErr).Warn("failed to remove partially written file")
		}
		return 0, errors.Wrap(err, "failed to copy file")
	}

	logger.Debugf("copied %d bytes", written)
	return written, nil
}

func (l *Local) Delete(ctx context.Context, name string) error {
	return os.Remove(l.fullPath(name))
}

func (l *Local) URL(name string) string {
	return l.baseURL + "/" + strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (l *Local) fullPath(name string) string {
	// Clean against root so names can't escape the data directory
	return filepath.Join(l.rootDir, filepath.FromSlash(path.Clean("/"+name)))
}

func (l *Local) copyFile(source io.Reader, destinationPath string) (int64, error) {
	dest, err := os.Create(destinationPath)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create destination file")
	}

	defer dest.Close()

	written, err := io.Copy(dest, source)
	if err != nil {
		return 0, errors.Wrap(err, "failed to copy data")
	}

	return written, nil
}
