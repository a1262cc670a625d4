package model

import (
	"time"
)

const (
	DefaultCurrency     = CurrencyUSD
	DefaultType         = TypeOneOff
	DefaultListLimit    = 50
	DefaultHookTimeout  = 60 * time.Second
	DefaultMaxImageSize = 10 << 20
	DefaultMaxVideoSize = 100 << 20
	DefaultSuccessURL   = "/donate/success"

	DefaultLogMaxSize    = 50 // megabytes
	DefaultLogMaxAge     = 30 // days
	DefaultLogMaxBackups = 7
)

// DefaultMinAmounts holds the smallest accepted donation per currency, in minor units.
var DefaultMinAmounts = map[Currency]int64{
	CurrencyUSD: 500,
	CurrencyGBP: 100,
}
