package db

import (
	"context"

	"github.com/go-pg/pg"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

type Postgres struct {
	db *pg.DB
}

var _ Storage = (*Postgres)(nil)

func NewPostgres(config *Config) (*Postgres, error) {
	opts, err := pg.ParseURL(config.PostgresURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse postgres connection url")
	}

	log.Infof("connecting to postgres at %s", opts.Addr)
	db := pg.Connect(opts)

	// Check database connectivity
	if _, err := db.ExecOne("SELECT 1"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to check database connectivity")
	}

	if _, err := db.Exec(pgsql); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to apply database schema")
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	log.Debug("closing database")
	return p.db.Close()
}

func (p *Postgres) Version() (int, error) {
	var version int
	_, err := p.db.QueryOne(pg.Scan(&version), "SELECT version FROM schema_version LIMIT 1")
	if err != nil {
		return -1, errors.Wrap(err, "failed to query schema version")
	}

	return version, nil
}

func (p *Postgres) AddDonation(_ context.Context, donation *model.Donation) error {
	err := p.db.Insert(donation)
	if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
		return model.ErrAlreadyExists
	}

	if err != nil {
		return errors.Wrapf(err, "failed to insert donation %q", donation.ID)
	}

	return nil
}

func (p *Postgres) GetDonation(_ context.Context, donationID string) (*model.Donation, error) {
	donation := &model.Donation{}
	err := p.db.Model(donation).Where("id = ?", donationID).Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to query donation %q", donationID)
	}

	return donation, nil
}

func (p *Postgres) UpdateDonation(_ context.Context, donationID string, cb func(donation *model.Donation) error) error {
	return p.db.RunInTransaction(func(tx *pg.Tx) error {
		donation := &model.Donation{}
		err := tx.Model(donation).Where("id = ?", donationID).For("UPDATE").Select()
		if err == pg.ErrNoRows {
			return model.ErrNotFound
		}

		if err != nil {
			return errors.Wrapf(err, "failed to query donation %q", donationID)
		}

		if err := cb(donation); err != nil {
			return err
		}

		if donation.ID != donationID {
			return errors.New("can't change donation ID")
		}

		return tx.Update(donation)
	})
}

func (p *Postgres) WalkDonations(_ context.Context, cb func(donation *model.Donation) error) error {
	var list []*model.Donation
	if err := p.db.Model(&list).Order("created_at ASC", "id ASC").Select(); err != nil {
		return errors.Wrap(err, "failed to query donations")
	}

	for _, donation := range list {
		if err := cb(donation); err != nil {
			return err
		}
	}

	return nil
}

func (p *Postgres) SetMediaSlot(_ context.Context, slot *model.MediaSlot) error {
	_, err := p.db.Model(slot).
		OnConflict("(key) DO UPDATE").
		Set("kind = EXCLUDED.kind").
		Set("urls = EXCLUDED.urls").
		Set("updated_at = EXCLUDED.updated_at").
		Insert()

	if err != nil {
		return errors.Wrapf(err, "failed to save media slot %q", slot.Key)
	}

	return nil
}

func (p *Postgres) GetMediaSlot(_ context.Context, key string) (*model.MediaSlot, error) {
	slot := &model.MediaSlot{}
	err := p.db.Model(slot).Where("key = ?", key).Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to query media slot %q", key)
	}

	return slot, nil
}

func (p *Postgres) DeleteMediaSlot(_ context.Context, key string) error {
	_, err := p.db.Model(&model.MediaSlot{}).Where("key = ?", key).Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete media slot %q", key)
	}

	return nil
}

func (p *Postgres) WalkMediaSlots(_ context.Context, cb func(slot *model.MediaSlot) error) error {
	var list []*model.MediaSlot
	if err := p.db.Model(&list).Order("key ASC").Select(); err != nil {
		return errors.Wrap(err, "failed to query media slots")
	}

	for _, slot := range list {
		if err := cb(slot); err != nil {
			return err
		}
	}

	return nil
}
