package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ParseAmount converts a decimal amount in major units ("25", "25.5", "25.50")
// to minor units without going through floating point.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("amount is empty")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	if len(frac) > 2 {
		return 0, errors.Errorf("amount %q has more than two decimal places", s)
	}

	if whole == "" {
		whole = "0"
	}

	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, errors.Errorf("amount %q is not a positive decimal number", s)
			}
		}
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse amount %q", s)
	}

	for len(frac) < 2 {
		frac += "0"
	}

	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse amount %q", s)
	}

	const maxMajor = (1<<63 - 1) / 100
	if major > maxMajor-1 {
		return 0, errors.Errorf("amount %q is too large", s)
	}

	return major*100 + minor, nil
}

// FormatAmount renders minor units with the currency symbol.
func FormatAmount(amount int64, cur Currency) string {
	unit, err := currency.ParseISO(string(cur))
	if err != nil {
		return fmt.Sprintf("%d.%02d %s", amount/100, amount%100, cur)
	}

	// The printer puts a space after the symbol, "$ 25.00". Keep it only for letter codes like "CHF 25.00".
	out := printer.Sprint(currency.Symbol(unit.Amount(float64(amount) / 100)))
	if i := strings.IndexByte(out, ' '); i > 0 && !strings.ContainsFunc(out[:i], unicode.IsLetter) {
		out = out[:i] + out[i+1:]
	}

	return out
}
