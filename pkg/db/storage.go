package db

import (
	"context"

	"github.com/hopebridge/hopebridge/pkg/model"
)

type Version int

const (
	CurrentVersion = 1
)

type Storage interface {
	Close() error
	Version() (int, error)

	// AddDonation inserts a new donation, fails with model.ErrAlreadyExists if the ID is taken
	AddDonation(ctx context.Context, donation *model.Donation) error

	// GetDonation gets a donation by ID
	GetDonation(ctx context.Context, donationID string) (*model.Donation, error)

	// UpdateDonation loads a donation, passes it to the callback and saves the result in one transaction
	UpdateDonation(ctx context.Context, donationID string, cb func(donation *model.Donation) error) error

	// WalkDonations iterates over donations in creation order
	WalkDonations(ctx context.Context, cb func(donation *model.Donation) error) error

	// SetMediaSlot inserts or replaces a media slot override
	SetMediaSlot(ctx context.Context, slot *model.MediaSlot) error

	// GetMediaSlot gets a media slot override by key
	GetMediaSlot(ctx context.Context, key string) (*model.MediaSlot, error)

	// DeleteMediaSlot removes an override, missing keys are ignored
	DeleteMediaSlot(ctx context.Context, key string) error

	// WalkMediaSlots iterates over all media slot overrides
	WalkMediaSlots(ctx context.Context, cb func(slot *model.MediaSlot) error) error
}
