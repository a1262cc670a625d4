package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/config"
	"github.com/hopebridge/hopebridge/pkg/model"
)

// ErrNotConfigured is returned when no form endpoint is set.
var ErrNotConfigured = errors.New("contact form endpoint is not configured")

const (
	defaultTimeout   = 10 * time.Second
	maxMessageLength = 5000

	maxUnescapePasses = 4
)

type Config struct {
	// Endpoint is the external form service to forward messages to (Formspree or similar)
	Endpoint string `toml:"endpoint"`
	// Timeout for the upstream request, defaults to 10s
	Timeout config.Duration `toml:"timeout"`
}

// Message is what the contact form posts.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// UpstreamError is returned when the form service answers with a non 2xx status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("form service responded with %d: %s", e.Status, e.Body)
}

// Relay forwards contact form submissions to a third party form service.
type Relay struct {
	endpoint string
	client   *http.Client
	policy   *bluemonday.Policy
}

func NewRelay(cfg Config) *Relay {
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Relay{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		policy:   bluemonday.StrictPolicy(),
	}
}

// Send validates the message and posts it upstream as JSON.
func (r *Relay) Send(ctx context.Context, msg *Message) error {
	if r.endpoint == "" {
		return ErrNotConfigured
	}

	clean, err := r.validate(msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(clean)
	if err != nil {
		return errors.Wrap(err, "failed to encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build form request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach form service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	log.WithField("email", clean.Email).Info("contact message relayed")
	return nil
}

func (r *Relay) validate(msg *Message) (*Message, error) {
	clean := &Message{
		Name:    r.text(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: r.text(msg.Subject),
		Message: r.text(msg.Message),
	}

	var errs []model.FieldError

	if clean.Name == "" {
		errs = append(errs, model.FieldError{Field: "name", Message: "name is required"})
	}

	if clean.Email == "" {
		errs = append(errs, model.FieldError{Field: "email", Message: "email is required"})
	} else if addr, err := mail.ParseAddress(clean.Email); err != nil || addr.Address != clean.Email {
		errs = append(errs, model.FieldError{Field: "email", Message: "email address is not valid"})
	}

	if clean.Message == "" {
		errs = append(errs, model.FieldError{Field: "message", Message: "message is required"})
	} else if len(clean.Message) > maxMessageLength {
		errs = append(errs, model.FieldError{Field: "message", Message: fmt.Sprintf("message must be at most %d characters", maxMessageLength)})
	}

	if len(errs) > 0 {
		return nil, model.NewValidationError(errs...)
	}

	return clean, nil
}

// text strips markup, the form service only needs plain text.
// Entity encoded markup is decoded and stripped as well.
func (r *Relay) text(s string) string {
	for i := 0; i < maxUnescapePasses; i++ {
		plain := html.UnescapeString(r.policy.Sanitize(s))
		if plain == s {
			return strings.TrimSpace(plain)
		}
		s = plain
	}

	// Still decoding, keep it escaped
	return strings.TrimSpace(r.policy.Sanitize(s))
}
