package donation

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hopebridge/hopebridge/pkg/model"
)

type Config struct {
	// Currency is used when the form does not send one
	Currency model.Currency `toml:"currency"`
	// CheckoutURL is a hosted payment page to redirect donors to after a donation is recorded.
	// When empty donors are sent straight to SuccessURL.
	CheckoutURL string `toml:"checkout_url"`
	// SuccessURL is the thank you page, "?id=<donation id>" is appended
	SuccessURL string `toml:"success_url"`
	// MinAmount overrides the smallest accepted amount per currency, in minor units.
	// Currencies listed here are accepted in addition to USD and GBP.
	// USD and GBP minimums can only be raised.
	MinAmount map[string]int64 `toml:"min_amount"`
}

func (c Config) minAmounts() map[model.Currency]int64 {
	out := make(map[model.Currency]int64, len(model.DefaultMinAmounts)+len(c.MinAmount))
	for cur, amount := range model.DefaultMinAmounts {
		out[cur] = amount
	}
	for cur, amount := range c.MinAmount {
		out[model.Currency(strings.ToUpper(cur))] = amount
	}
	return out
}

// Validate checks minimum amount overrides.
func (c Config) Validate() error {
	var result *multierror.Error

	names := make([]string, 0, len(c.MinAmount))
	for name := range c.MinAmount {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var (
			amount = c.MinAmount[name]
			cur    = model.Currency(strings.ToUpper(name))
		)

		if floor, ok := model.DefaultMinAmounts[cur]; ok && amount < floor {
			result = multierror.Append(result, errors.Errorf("minimum amount for %s can't be lower than %d", cur, floor))
		} else if amount <= 0 {
			result = multierror.Append(result, errors.Errorf("minimum amount for %s must be positive", cur))
		}
	}

	return result.ErrorOrNil()
}
