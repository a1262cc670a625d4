package db

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/hopebridge/hopebridge/pkg/model"
)

// Memory keeps everything in process memory. Data is lost on restart,
// use it for development and tests only.
type Memory struct {
	lock      sync.RWMutex
	donations map[string]*model.Donation
	slots     map[string]*model.MediaSlot
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		donations: make(map[string]*model.Donation),
		slots:     make(map[string]*model.MediaSlot),
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Version() (int, error) {
	return CurrentVersion, nil
}

func (m *Memory) AddDonation(_ context.Context, donation *model.Donation) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.donations[donation.ID]; ok {
		return model.ErrAlreadyExists
	}

	stored := &model.Donation{}
	if err := clone(donation, stored); err != nil {
		return err
	}

	m.donations[donation.ID] = stored
	return nil
}

func (m *Memory) GetDonation(_ context.Context, donationID string) (*model.Donation, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	stored, ok := m.donations[donationID]
	if !ok {
		return nil, model.ErrNotFound
	}

	out := &model.Donation{}
	return out, clone(stored, out)
}

func (m *Memory) UpdateDonation(_ context.Context, donationID string, cb func(donation *model.Donation) error) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	stored, ok := m.donations[donationID]
	if !ok {
		return model.ErrNotFound
	}

	// Work on a copy so a failed callback leaves the stored record untouched
	donation := &model.Donation{}
	if err := clone(stored, donation); err != nil {
		return err
	}

	if err := cb(donation); err != nil {
		return err
	}

	if donation.ID != donationID {
		return errors.New("can't change donation ID")
	}

	m.donations[donationID] = donation
	return nil
}

func (m *Memory) WalkDonations(_ context.Context, cb func(donation *model.Donation) error) error {
	m.lock.RLock()
	list := make([]*model.Donation, 0, len(m.donations))
	for _, stored := range m.donations {
		donation := &model.Donation{}
		if err := clone(stored, donation); err != nil {
			m.lock.RUnlock()
			return err
		}
		list = append(list, donation)
	}
	m.lock.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	for _, donation := range list {
		if err := cb(donation); err != nil {
			return err
		}
	}

	return nil
}

func (m *Memory) SetMediaSlot(_ context.Context, slot *model.MediaSlot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	stored := &model.MediaSlot{}
	if err := clone(slot, stored); err != nil {
		return err
	}

	m.slots[slot.Key] = stored
	return nil
}

func (m *Memory) GetMediaSlot(_ context.Context, key string) (*model.MediaSlot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	stored, ok := m.slots[key]
	if !ok {
		return nil, model.ErrNotFound
	}

	out := &model.MediaSlot{}
	return out, clone(stored, out)
}

func (m *Memory) DeleteMediaSlot(_ context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.slots, key)
	return nil
}

func (m *Memory) WalkMediaSlots(_ context.Context, cb func(slot *model.MediaSlot) error) error {
	m.lock.RLock()
	keys := make([]string, 0, len(m.slots))
	for key := range m.slots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	list := make([]*model.MediaSlot, 0, len(keys))
	for _, key := range keys {
		slot := &model.MediaSlot{}
		if err := clone(m.slots[key], slot); err != nil {
			m.lock.RUnlock()
			return err
		}
		list = append(list, slot)
	}
	m.lock.RUnlock()

	for _, slot := range list {
		if err := cb(slot); err != nil {
			return err
		}
	}

	return nil
}

// clone deep copies through JSON, the same representation the other backends persist
func clone(in, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to serialize object")
	}

	return json.Unmarshal(data, out)
}
