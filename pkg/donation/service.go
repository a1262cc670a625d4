package donation

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

// Hook events
const (
	EventCreated       = "created"
	EventStatusChanged = "status_changed"
)

// Stats metrics
const (
	MetricPledged  = "pledged"
	MetricRaised   = "raised"
	MetricRefunded = "refunded"
)

type storage interface {
	AddDonation(ctx context.Context, donation *model.Donation) error
	GetDonation(ctx context.Context, donationID string) (*model.Donation, error)
	UpdateDonation(ctx context.Context, donationID string, cb func(donation *model.Donation) error) error
	WalkDonations(ctx context.Context, cb func(donation *model.Donation) error) error
}

type counter interface {
	Inc(metric string, currency model.Currency, amount int64) error
}

type notifier interface {
	Notify(event string, donation *model.Donation)
}

// Result is returned to the donation form after a successful submission
type Result struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Filter narrows down List results
type Filter struct {
	Status model.Status
	Limit  int
}

type Service struct {
	db         storage
	stats      counter
	hooks      notifier
	ids        IDGen
	currency   model.Currency
	minAmounts map[model.Currency]int64
	checkout   string
	success    string
	now        func() time.Time
}

type Option func(s *Service)

func WithStats(stats counter) Option {
	return func(s *Service) {
		s.stats = stats
	}
}

func WithHooks(hooks notifier) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

func NewService(db storage, cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid donation config")
	}

	ids, err := NewIDGen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create donation id generator")
	}

	s := &Service{
		db:         db,
		ids:        ids,
		currency:   cfg.Currency,
		minAmounts: cfg.minAmounts(),
		checkout:   cfg.CheckoutURL,
		success:    cfg.SuccessURL,
		now:        func() time.Time { return time.Now().UTC() },
	}

	if s.currency == "" {
		s.currency = model.DefaultCurrency
	}

	if s.success == "" {
		s.success = model.DefaultSuccessURL
	}

	if _, ok := s.minAmounts[s.currency]; !ok {
		return nil, errors.Errorf("default currency %s has no minimum amount", s.currency)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Create validates and records a new pending donation.
func (s *Service) Create(ctx context.Context, req *Request) (*Result, error) {
	donation, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	donation.ID, err = s.ids.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate donation id")
	}

	now := s.now()
	donation.Status = model.StatusPending
	donation.CreatedAt = now
	donation.UpdatedAt = now

	if err := s.db.AddDonation(ctx, donation); err != nil {
		return nil, errors.Wrap(err, "failed to save donation")
	}

	logger := log.WithFields(log.Fields{
		"donation_id": donation.ID,
		"amount":      donation.DisplayAmount(),
		"type":        donation.Type,
	})
	logger.Info("donation received")

	s.count(MetricPledged, donation.Currency, donation.Amount, donation.ID)
	s.notify(EventCreated, donation)

	redirect, err := s.redirectURL(donation)
	if err != nil {
		return nil, err
	}

	return &Result{ID: donation.ID, RedirectURL: redirect}, nil
}

func (s *Service) Get(ctx context.Context, donationID string) (*model.Donation, error) {
	return s.db.GetDonation(ctx, donationID)
}

// List returns donations newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Donation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = model.DefaultListLimit
	}

	var list []*model.Donation
	if err := s.db.WalkDonations(ctx, func(donation *model.Donation) error {
		if filter.Status == "" || donation.Status == filter.Status {
			list = append(list, donation)
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to walk donations")
	}

	// Walk yields oldest first
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}

	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// UpdateStatus moves a donation through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, donationID string, status model.Status) (*model.Donation, error) {
	if !status.Valid() {
		return nil, model.NewValidationError(model.FieldError{Field: "status", Message: "unknown status " + strconv.Quote(string(status))})
	}

	var (
		updated  *model.Donation
		previous model.Status
	)

	err := s.db.UpdateDonation(ctx, donationID, func(donation *model.Donation) error {
		if !donation.Status.CanTransition(status) {
			return errors.Wrapf(model.ErrInvalidTransition, "%s -> %s", donation.Status, status)
		}

		previous = donation.Status

		donation.Status = status
		donation.UpdatedAt = s.now()
		updated = donation
		return nil
	})

	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"donation_id": donationID,
		"status":      status,
	}).Info("donation status changed")

	switch {
	case status == model.StatusCompleted:
		s.count(MetricRaised, updated.Currency, updated.Amount, updated.ID)
	case status == model.StatusRefunded && previous == model.StatusCompleted:
		// Refunded money is no longer raised
		s.count(MetricRaised, updated.Currency, -updated.Amount, updated.ID)
		s.count(MetricRefunded, updated.Currency, updated.Amount, updated.ID)
	}

	s.notify(EventStatusChanged, updated)
	return updated, nil
}

func (s *Service) redirectURL(donation *model.Donation) (string, error) {
	success, err := url.Parse(s.success)
	if err != nil {
		return "", errors.Wrapf(err, "invalid success url %q", s.success)
	}

	query := success.Query()
	query.Set("id", donation.ID)
	success.RawQuery = query.Encode()

	if s.checkout == "" {
		return success.String(), nil
	}

	checkout, err := url.Parse(s.checkout)
	if err != nil {
		return "", errors.Wrapf(err, "invalid checkout url %q", s.checkout)
	}

	query = checkout.Query()
	query.Set("donation_id", donation.ID)
	query.Set("amount", strconv.FormatInt(donation.Amount, 10))
	query.Set("currency", string(donation.Currency))
	query.Set("type", string(donation.Type))
	query.Set("return_url", success.String())
	checkout.RawQuery = query.Encode()

	return checkout.String(), nil
}

func (s *Service) count(metric string, currency model.Currency, amount int64, donationID string) {
	if s.stats == nil {
		return
	}

	if err := s.stats.Inc(metric, currency, amount); err != nil {
		log.WithError(err).WithField("donation_id", donationID).Warnf("failed to record %s stats", metric)
	}
}

func (s *Service) notify(event string, donation *model.Donation) {
	if s.hooks == nil {
		return
	}

	s.hooks.Notify(event, donation)
}
