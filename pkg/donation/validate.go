package donation

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/hopebridge/hopebridge/pkg/model"
)

// Request is the payload posted by the donation form.
// Amount is in major units and may be sent as a JSON number or string.
type Request struct {
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Address    model.Address      `json:"address"`
	Amount     json.Number        `json:"amount"`
	Currency   model.Currency     `json:"currency"`
	Type       model.DonationType `json:"type"`
	Dedication *model.Dedication  `json:"dedication"`
	Anonymous  bool               `json:"anonymous"`
	GiftAid    bool               `json:"gift_aid"`
	Message    string             `json:"message"`
}

const maxMessageLength = 2000

// Validate normalizes the request and converts it to a donation model.
func (s *Service) Validate(req *Request) (*model.Donation, error) {
	var errs []model.FieldError

	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, model.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	donation := &model.Donation{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    trimAddress(req.Address),
		Currency:   model.Currency(strings.ToUpper(strings.TrimSpace(string(req.Currency)))),
		Type:       req.Type,
		Dedication: req.Dedication,
		Anonymous:  req.Anonymous,
		GiftAid:    req.GiftAid,
		Message:    strings.TrimSpace(req.Message),
	}

	if donation.FirstName == "" {
		fail("first_name", "first name is required")
	}

	if donation.LastName == "" {
		fail("last_name", "last name is required")
	}

	if donation.Email == "" {
		fail("email", "email is required")
	} else if addr, err := mail.ParseAddress(donation.Email); err != nil || addr.Address != donation.Email {
		fail("email", "email address is not valid")
	}

	if donation.Currency == "" {
		donation.Currency = s.currency
	}

	minAmount, ok := s.minAmounts[donation.Currency]
	if !ok {
		fail("currency", "currency %s is not accepted", donation.Currency)
	}

	if req.Amount == "" {
		fail("amount", "amount is required")
	} else if amount, err := model.ParseAmount(req.Amount.String()); err != nil {
		fail("amount", "amount must be a positive number with at most two decimal places")
	} else if ok && amount < minAmount {
		fail("amount", "minimum donation is %s", model.FormatAmount(minAmount, donation.Currency))
	} else {
		donation.Amount = amount
	}

	switch donation.Type {
	case "":
		donation.Type = model.DefaultType
	case model.TypeOneOff, model.TypeMonthly:
	default:
		fail("type", "donation type must be %q or %q", model.TypeOneOff, model.TypeMonthly)
	}

	if d := donation.Dedication; d != nil {
		d.Name = strings.TrimSpace(d.Name)
		d.Message = strings.TrimSpace(d.Message)

		switch {
		case d.Kind == "" && d.Name == "" && d.Message == "":
			// Empty dedication block sent by the form
			donation.Dedication = nil
		case d.Kind != model.DedicationHonor && d.Kind != model.DedicationMemory:
			fail("dedication.kind", "dedication must be %q or %q", model.DedicationHonor, model.DedicationMemory)
		case d.Name == "":
			fail("dedication.name", "name of the person the gift is dedicated to is required")
		}
	}

	if donation.GiftAid && donation.Currency != model.CurrencyGBP {
		fail("gift_aid", "gift aid can only be claimed on GBP donations")
	}

	if len(donation.Message) > maxMessageLength {
		fail("message", "message must be at most %d characters", maxMessageLength)
	}

	if len(errs) > 0 {
		return nil, model.NewValidationError(errs...)
	}

	return donation, nil
}

func trimAddress(a model.Address) model.Address {
	return model.Address{
		Line1:    strings.TrimSpace(a.Line1),
		Line2:    strings.TrimSpace(a.Line2),
		City:     strings.TrimSpace(a.City),
		Region:   strings.TrimSpace(a.Region),
		Postcode: strings.TrimSpace(a.Postcode),
		Country:  strings.ToUpper(strings.TrimSpace(a.Country)),
	}
}
