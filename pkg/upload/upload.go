package upload

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("only images and videos can be uploaded")
)

// sniffLen is how much http.DetectContentType looks at.
const sniffLen = 512

var extRegexp = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

type Config struct {
	// MaxImageSize is the largest accepted image in bytes
	MaxImageSize int64 `toml:"max_image_size"`
	// MaxVideoSize is the largest accepted video in bytes
	MaxVideoSize int64 `toml:"max_video_size"`
}

type storage interface {
	Create(ctx context.Context, name string, reader io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// File describes a stored upload.
type File struct {
	URL         string          `json:"url"`
	Name        string          `json:"name"`
	Size        int64           `json:"size"`
	ContentType string          `json:"content_type"`
	Kind        model.MediaKind `json:"-"`
}

type Service struct {
	storage  storage
	maxImage int64
	maxVideo int64
	now      func() time.Time
	newID    func() string
}

func NewService(storage storage, cfg Config) *Service {
	s := &Service{
		storage:  storage,
		maxImage: cfg.MaxImageSize,
		maxVideo: cfg.MaxVideoSize,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}

	if s.maxImage <= 0 {
		s.maxImage = model.DefaultMaxImageSize
	}

	if s.maxVideo <= 0 {
		s.maxVideo = model.DefaultMaxVideoSize
	}

	return s
}

// Save checks what the file actually contains, stores it under a fresh name and returns its public URL.
// original is the name the client sent and only contributes the extension.
func (s *Service) Save(ctx context.Context, original string, reader io.Reader) (*File, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	head = head[:n]

	contentType, kind, err := detect(head)
	if err != nil {
		return nil, err
	}

	limit := s.maxImage
	if kind == model.MediaVideo {
		limit = s.maxVideo
	}

	if int64(n) > limit {
		return nil, ErrTooLarge
	}

	name := path.Join(s.now().Format("2006/01"), s.newID()+extension(original, contentType))

	logger := log.WithFields(log.Fields{
		"name":         name,
		"original":     original,
		"content_type": contentType,
	})

	body := &limitReader{
		Reader:    io.MultiReader(bytes.NewReader(head), reader),
		remaining: limit,
	}

	size, err := s.storage.Create(ctx, name, body)
	if err != nil {
		if delErr := s.storage.Delete(ctx, name); delErr != nil {
			logger.WithError(delErr).Debug("nothing to clean up after failed upload")
		}

		if body.exceeded {
			return nil, ErrTooLarge
		}

		return nil, errors.Wrap(err, "failed to store upload")
	}

	logger.Infof("stored %d bytes", size)

	return &File{
		URL:         s.storage.URL(name),
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Kind:        kind,
	}, nil
}

// Delete removes a stored upload by its name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.storage.Delete(ctx, name); err != nil {
		return errors.Wrapf(err, "failed to delete upload %s", name)
	}

	log.WithField("name", name).Info("upload removed")
	return nil
}

func detect(head []byte) (string, model.MediaKind, error) {
	contentType, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil {
		return "", "", ErrUnsupportedType
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return contentType, model.MediaImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return contentType, model.MediaVideo, nil
	default:
		return "", "", ErrUnsupportedType
	}
}

func extension(original string, contentType string) string {
	ext := strings.ToLower(path.Ext(original))
	if extRegexp.MatchString(ext) {
		return ext
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}

// limitReader fails once more than remaining bytes are read.
type limitReader struct {
	io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.Reader.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return 0, ErrTooLarge
	}
	return n, err
}
