package stats

import (
	"strconv"
	"strings"

	"github.com/hopebridge/hopebridge/pkg/model"
)

// Total is a counter for one metric and currency.
type Total struct {
	Count  int64 `json:"count"`
	Amount int64 `json:"amount"`
}

// Totals groups counters by metric, then currency.
type Totals map[string]map[model.Currency]Total

// Report is what the stats endpoint shows.
type Report struct {
	Period    string `json:"period"`
	ThisMonth Totals `json:"this_month"`
	AllTime   Totals `json:"all_time"`
}

type Stats interface {
	Inc(metric string, currency model.Currency, amount int64) error
	Totals() (*Report, error)
	Close() error
}

// Noop is used when no stats backend is configured.
type Noop struct{}

func (Noop) Inc(metric string, currency model.Currency, amount int64) error {
	return nil
}

func (Noop) Totals() (*Report, error) {
	return &Report{ThisMonth: Totals{}, AllTime: Totals{}}, nil
}

func (Noop) Close() error {
	return nil
}

const (
	fieldCount  = "count"
	fieldAmount = "amount"
)

// field builds hash field names like "raised/USD/amount".
func field(metric string, currency model.Currency, kind string) string {
	return metric + "/" + string(currency) + "/" + kind
}

func parseTotals(fields map[string]string) Totals {
	out := Totals{}
	for name, value := range fields {
		parts := strings.Split(name, "/")
		if len(parts) != 3 {
			continue
		}

		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}

		metric, currency := parts[0], model.Currency(parts[1])
		if out[metric] == nil {
			out[metric] = map[model.Currency]Total{}
		}

		total := out[metric][currency]
		switch parts[2] {
		case fieldCount:
			total.Count = n
		case fieldAmount:
			total.Amount = n
		default:
			continue
		}
		out[metric][currency] = total
	}
	return out
}
