package media

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

type storage interface {
	SetMediaSlot(ctx context.Context, slot *model.MediaSlot) error
	GetMediaSlot(ctx context.Context, key string) (*model.MediaSlot, error)
	DeleteMediaSlot(ctx context.Context, key string) error
	WalkMediaSlots(ctx context.Context, cb func(slot *model.MediaSlot) error) error
}

// Slot is the effective state of a media placement.
type Slot struct {
	Key        string          `json:"key"`
	Location   string          `json:"location"`
	Kind       model.MediaKind `json:"kind"`
	Multiple   bool            `json:"multiple"`
	URLs       []string        `json:"urls"`
	Defaults   []string        `json:"defaults,omitempty"`
	Overridden bool            `json:"overridden"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// Service keeps admin-assigned media URLs for named slots and renders them,
// merged with the configured defaults, as a nested document.
type Service struct {
	db       storage
	defaults map[string][]string
	keys     map[string]Key
	lock     sync.Mutex
	now      func() time.Time
}

func NewService(db storage, cfg Config) (*Service, error) {
	s := &Service{
		db:       db,
		defaults: make(map[string][]string, len(cfg.Defaults)),
		keys:     make(map[string]Key, len(cfg.Defaults)),
		now:      func() time.Time { return time.Now().UTC() },
	}

	for name, urls := range cfg.Defaults {
		key, err := ParseKey(name)
		if err != nil {
			return nil, errors.Wrap(err, "invalid default media slot")
		}

		if !key.Multiple && len(urls) > 1 {
			return nil, errors.Errorf("default media slot %q holds a single url, got %d", name, len(urls))
		}

		s.defaults[name] = urls
		s.keys[name] = key
	}

	if _, err := buildTree(s.keys, nil); err != nil {
		return nil, errors.Wrap(err, "invalid default media slots")
	}

	return s, nil
}

// Assign stores URLs for a slot. Single slots are replaced, list slots are appended to.
func (s *Service) Assign(ctx context.Context, name string, urls ...string) (*Slot, error) {
	key, err := ParseKey(name)
	if err != nil {
		return nil, err
	}

	if len(urls) == 0 {
		return nil, errors.Wrap(ErrInvalidSlot, "at least one url is required")
	}

	if !key.Multiple && len(urls) > 1 {
		return nil, errors.Wrapf(ErrInvalidSlot, "%q holds a single url, got %d", name, len(urls))
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	keys, err := s.allKeys(ctx)
	if err != nil {
		return nil, err
	}

	keys[name] = key
	if _, err := buildTree(keys, nil); err != nil {
		return nil, err
	}

	stored, err := s.db.GetMediaSlot(ctx, name)
	if err != nil && err != model.ErrNotFound {
		return nil, errors.Wrapf(err, "failed to query media slot %q", name)
	}

	slot := &model.MediaSlot{
		Key:       name,
		Kind:      key.Kind,
		UpdatedAt: s.now(),
	}

	if key.Multiple {
		base := s.defaults[name]
		if stored != nil {
			base = stored.URLs
		}
		slot.URLs = appendUnique(append([]string{}, base...), urls...)
	} else {
		slot.URLs = []string{urls[0]}
	}

	if err := s.db.SetMediaSlot(ctx, slot); err != nil {
		return nil, errors.Wrapf(err, "failed to save media slot %q", name)
	}

	log.WithFields(log.Fields{
		"slot":     name,
		"location": key.Location(),
		"urls":     len(slot.URLs),
	}).Info("media slot updated")

	return s.effective(key, slot), nil
}

// Remove drops a single URL from a list slot.
func (s *Service) Remove(ctx context.Context, name string, url string) (*Slot, error) {
	key, err := ParseKey(name)
	if err != nil {
		return nil, err
	}

	if !key.Multiple {
		return nil, errors.Wrapf(ErrInvalidSlot, "%q holds a single url, reset it instead", name)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	current := s.defaults[name]
	stored, err := s.db.GetMediaSlot(ctx, name)
	if err == nil {
		current = stored.URLs
	} else if err != model.ErrNotFound {
		return nil, errors.Wrapf(err, "failed to query media slot %q", name)
	}

	slot := &model.MediaSlot{
		Key:       name,
		Kind:      key.Kind,
		UpdatedAt: s.now(),
		URLs:      []string{},
	}

	found := false
	for _, u := range current {
		if u == url {
			found = true
			continue
		}
		slot.URLs = append(slot.URLs, u)
	}

	if !found {
		return nil, model.ErrNotFound
	}

	if err := s.db.SetMediaSlot(ctx, slot); err != nil {
		return nil, errors.Wrapf(err, "failed to save media slot %q", name)
	}

	return s.effective(key, slot), nil
}

// Reset removes the override so the slot falls back to its default.
func (s *Service) Reset(ctx context.Context, name string) error {
	if _, err := ParseKey(name); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.db.DeleteMediaSlot(ctx, name); err != nil {
		return errors.Wrapf(err, "failed to reset media slot %q", name)
	}

	log.WithField("slot", name).Info("media slot reset to default")
	return nil
}

// Slots lists every known slot sorted by key.
func (s *Service) Slots(ctx context.Context) ([]*Slot, error) {
	overrides, err := s.overrides(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*Slot)
	for name, key := range s.keys {
		result[name] = s.effective(key, nil)
	}

	for name, stored := range overrides {
		key, err := ParseKey(name)
		if err != nil {
			log.WithError(err).Warnf("skipping stored media slot %q", name)
			continue
		}
		result[name] = s.effective(key, stored)
	}

	list := make([]*Slot, 0, len(result))
	for _, slot := range result {
		list = append(list, slot)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})

	return list, nil
}

// Tree renders the media document: single slots become strings, list slots string arrays.
func (s *Service) Tree(ctx context.Context) (map[string]interface{}, error) {
	slots, err := s.Slots(ctx)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]Key, len(slots))
	values := make(map[string][]string, len(slots))
	for _, slot := range slots {
		key, err := ParseKey(slot.Key)
		if err != nil {
			return nil, err
		}
		keys[slot.Key] = key
		values[slot.Key] = slot.URLs
	}

	return buildTree(keys, values)
}

func (s *Service) effective(key Key, stored *model.MediaSlot) *Slot {
	slot := &Slot{
		Key:      key.Name,
		Location: key.Location(),
		Kind:     key.Kind,
		Multiple: key.Multiple,
		Defaults: s.defaults[key.Name],
		URLs:     s.defaults[key.Name],
	}

	if stored != nil {
		updated := stored.UpdatedAt
		slot.URLs = stored.URLs
		slot.Overridden = true
		slot.UpdatedAt = &updated
	}

	if slot.URLs == nil {
		slot.URLs = []string{}
	}

	return slot
}

func (s *Service) overrides(ctx context.Context) (map[string]*model.MediaSlot, error) {
	out := make(map[string]*model.MediaSlot)
	if err := s.db.WalkMediaSlots(ctx, func(slot *model.MediaSlot) error {
		out[slot.Key] = slot
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to walk media slots")
	}
	return out, nil
}

func (s *Service) allKeys(ctx context.Context) (map[string]Key, error) {
	keys := make(map[string]Key, len(s.keys))
	for name, key := range s.keys {
		keys[name] = key
	}

	overrides, err := s.overrides(ctx)
	if err != nil {
		return nil, err
	}

	for name := range overrides {
		key, err := ParseKey(name)
		if err != nil {
			continue
		}
		keys[name] = key
	}

	return keys, nil
}

// buildTree nests slot values by their path. It fails with model.ErrSlotConflict when
// one slot's value sits where another slot needs a branch.
func buildTree(keys map[string]Key, values map[string][]string) (map[string]interface{}, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	root := make(map[string]interface{})
	for _, name := range names {
		key := keys[name]

		node := root
		for _, part := range key.Path {
			next, ok := node[part]
			if !ok {
				child := make(map[string]interface{})
				node[part] = child
				node = child
				continue
			}

			child, ok := next.(map[string]interface{})
			if !ok {
				return nil, errors.Wrapf(model.ErrSlotConflict, "%q nests under a value at %q", name, part)
			}
			node = child
		}

		if _, ok := node[key.Field]; ok {
			return nil, errors.Wrapf(model.ErrSlotConflict, "%q overlaps another slot at %q", name, key.Location())
		}

		urls := values[name]
		if key.Multiple {
			if urls == nil {
				urls = []string{}
			}
			node[key.Field] = urls
		} else if len(urls) > 0 {
			node[key.Field] = urls[0]
		} else {
			node[key.Field] = ""
		}
	}

	return root, nil
}

func appendUnique(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		seen[item] = true
	}

	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		list = append(list, item)
	}

	return list
}
