package db

//noinspection SpellCheckingInspection
const pgsql = `
BEGIN;

CREATE TABLE IF NOT EXISTS schema_version (
  version INT NOT NULL
);

INSERT INTO schema_version (version)
SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM schema_version);

-- Donations

CREATE TABLE IF NOT EXISTS donations (
  id VARCHAR(32) PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NULL,
  address JSONB NULL,
  amount BIGINT NOT NULL CHECK (amount > 0),
  currency CHAR(3) NOT NULL,
  type VARCHAR(16) NOT NULL,
  dedication JSONB NULL,
  anonymous BOOLEAN NOT NULL DEFAULT FALSE,
  gift_aid BOOLEAN NOT NULL DEFAULT FALSE,
  message TEXT NULL,
  status VARCHAR(16) NOT NULL DEFAULT 'pending',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS donations_status_idx ON donations(status);
CREATE INDEX IF NOT EXISTS donations_created_at_idx ON donations(created_at);

-- Media slots

CREATE TABLE IF NOT EXISTS media_slots (
  key VARCHAR(128) PRIMARY KEY,
  kind VARCHAR(8) NOT NULL,
  urls TEXT[] NOT NULL DEFAULT '{}',
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

COMMIT;
`
