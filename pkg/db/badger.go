package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

const (
	versionPath    = "hopebridge/version"
	donationPrefix = "donation/"
	donationPath   = "donation/%s"
	slotPrefix     = "slot/"
	slotPath       = "slot/%s"
)

// BadgerConfig represents BadgerDB configuration parameters
// See https://github.com/dgraph-io/badger#memory-usage
type BadgerConfig struct {
	Truncate bool `toml:"truncate"`
	FileIO   bool `toml:"file_io"`
}

type Badger struct {
	db *badger.DB
}

var _ Storage = (*Badger)(nil)

func NewBadger(config *Config) (*Badger, error) {
	var (
		dir = config.Dir
	)

	log.Infof("opening database %q", dir)

	// Make sure database directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not mkdir database dir")
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(log.StandardLogger()).
		WithTruncate(true)

	if config.Badger != nil {
		opts.Truncate = config.Badger.Truncate
		if config.Badger.FileIO {
			opts.ValueLogLoadingMode = options.FileIO
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	storage := &Badger{db: db}

	if err := db.Update(func(txn *badger.Txn) error {
		if err := storage.setObj(txn, []byte(versionPath), CurrentVersion, false); err != nil && err != model.ErrAlreadyExists {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to read database version")
	}

	return storage, nil
}

func (b *Badger) Close() error {
	log.Debug("closing database")
	return b.db.Close()
}

func (b *Badger) Version() (int, error) {
	var (
		version = -1
	)

	err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, []byte(versionPath), &version)
	})

	return version, err
}

func (b *Badger) AddDonation(_ context.Context, donation *model.Donation) error {
	return b.db.Update(func(txn *badger.Txn) error {
		key := b.getKey(donationPath, donation.ID)
		return b.setObj(txn, key, donation, false)
	})
}

func (b *Badger) GetDonation(_ context.Context, donationID string) (*model.Donation, error) {
	var (
		donation model.Donation
		key      = b.getKey(donationPath, donationID)
	)

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, key, &donation)
	}); err != nil {
		return nil, err
	}

	return &donation, nil
}

func (b *Badger) UpdateDonation(_ context.Context, donationID string, cb func(donation *model.Donation) error) error {
	var (
		key      = b.getKey(donationPath, donationID)
		donation model.Donation
	)

	return b.db.Update(func(txn *badger.Txn) error {
		if err := b.getObj(txn, key, &donation); err != nil {
			return err
		}

		if err := cb(&donation); err != nil {
			return err
		}

		if donation.ID != donationID {
			return errors.New("can't change donation ID")
		}

		return b.setObj(txn, key, &donation, true)
	})
}

func (b *Badger) WalkDonations(_ context.Context, cb func(donation *model.Donation) error) error {
	var list []*model.Donation

	if err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(donationPrefix)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			donation := &model.Donation{}
			if err := b.unmarshalObj(item, donation); err != nil {
				return err
			}

			list = append(list, donation)
			return nil
		})
	}); err != nil {
		return err
	}

	// Keys are ordered by ID, callers expect creation order
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	for _, donation := range list {
		if err := cb(donation); err != nil {
			return err
		}
	}

	return nil
}

func (b *Badger) SetMediaSlot(_ context.Context, slot *model.MediaSlot) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return b.setObj(txn, b.getKey(slotPath, slot.Key), slot, true)
	})
}

func (b *Badger) GetMediaSlot(_ context.Context, key string) (*model.MediaSlot, error) {
	var slot model.MediaSlot

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, b.getKey(slotPath, key), &slot)
	}); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (b *Badger) DeleteMediaSlot(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(b.getKey(slotPath, key)); err != nil {
			return errors.Wrapf(err, "failed to delete media slot %q", key)
		}
		return nil
	})
}

func (b *Badger) WalkMediaSlots(_ context.Context, cb func(slot *model.MediaSlot) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(slotPrefix)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			slot := &model.MediaSlot{}
			if err := b.unmarshalObj(item, slot); err != nil {
				return err
			}

			return cb(slot)
		})
	})
}

func (b *Badger) iterator(txn *badger.Txn, opts badger.IteratorOptions, callback func(item *badger.Item) error) error {
	iter := txn.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()

		if err := callback(item); err != nil {
			return err
		}
	}

	return nil
}

func (b *Badger) getKey(format string, a ...interface{}) []byte {
	resourcePath := fmt.Sprintf(format, a...)
	fullPath := fmt.Sprintf("hopebridge/v%d/%s", CurrentVersion, resourcePath)

	return []byte(fullPath)
}

func (b *Badger) setObj(txn *badger.Txn, key []byte, obj interface{}, overwrite bool) error {
	if !overwrite {
		// Overwrites are not allowed, make sure there is no object with the given key
		_, err := txn.Get(key)
		if err == nil {
			return model.ErrAlreadyExists
		} else if err != badger.ErrKeyNotFound {
			return errors.Wrap(err, "failed to check whether key exists")
		}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize object for key %q", key)
	}

	return txn.Set(key, data)
}

func (b *Badger) getObj(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return model.ErrNotFound
		}

		return err
	}

	return b.unmarshalObj(item, out)
}

func (b *Badger) unmarshalObj(item *badger.Item, out interface{}) error {
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
