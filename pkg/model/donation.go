package model

import (
	"time"
)

// Currency is an ISO 4217 code accepted by the donation form
type Currency string

const (
	CurrencyUSD = Currency("USD")
	CurrencyGBP = Currency("GBP")
)

// DonationType is either a single gift or a recurring monthly one
type DonationType string

const (
	TypeOneOff  = DonationType("one-off")
	TypeMonthly = DonationType("monthly")
)

type DedicationKind string

const (
	DedicationHonor  = DedicationKind("honor")
	DedicationMemory = DedicationKind("memory")
)

type Status string

const (
	StatusPending   = Status("pending")
	StatusCompleted = Status("completed")
	StatusFailed    = Status("failed")
	StatusCancelled = Status("cancelled")
	StatusRefunded  = Status("refunded")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted: {StatusRefunded},
}

// CanTransition reports whether a donation in status from may move to status to.
func (from Status) CanTransition(to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Region   string `json:"region,omitempty"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Dedication marks a gift made in honor or in memory of someone
type Dedication struct {
	Kind    DedicationKind `json:"kind"`
	Name    string         `json:"name"`
	Message string         `json:"message,omitempty"`
}

//noinspection SpellCheckingInspection
type Donation struct {
	ID         string       `json:"id" sql:",pk"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone,omitempty"`
	Address    Address      `json:"address"`
	Amount     int64        `json:"amount"` // Minor units (cents, pence)
	Currency   Currency     `json:"currency"`
	Type       DonationType `json:"type"`
	Dedication *Dedication  `json:"dedication,omitempty"`
	Anonymous  bool         `json:"anonymous" sql:",notnull"`
	GiftAid    bool         `json:"gift_aid" sql:",notnull"`
	Message    string       `json:"message,omitempty"`
	Status     Status       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// DisplayAmount returns the donation amount formatted for humans, e.g. "$25.00".
func (d *Donation) DisplayAmount() string {
	return FormatAmount(d.Amount, d.Currency)
}
