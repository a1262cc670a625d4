package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopebridge/hopebridge/pkg/db"
	"github.com/hopebridge/hopebridge/pkg/fs"
	"github.com/hopebridge/hopebridge/pkg/model"
	"github.com/hopebridge/hopebridge/pkg/server"
)

func TestLoadConfig(t *testing.T) {
	const file = `
[server]
hostname = "https://hopebridge.org/"
port = 80
bind_address = "127.0.0.1"
web_dir = "/var/www/site"
admin_user = "admin"
admin_password = "secret"

[log]
filename = "/var/log/hopebridge.log"
max_size = 10

[database]
backend = "postgres"
postgres_url = "postgres://localhost/hopebridge"

[storage]
type = "s3"
  [storage.s3]
  bucket = "hopebridge-media"
  region = "us-east-1"
  prefix = "uploads"

[upload]
max_image_size = 1048576

[donations]
currency = "GBP"
checkout_url = "https://pay.example.org/checkout"
  [donations.min_amount]
  eur = 300

[stats]
redis_url = "redis://localhost:6379/0"

[contact]
endpoint = "https://formspree.io/f/abc"
timeout = "5s"

[media.defaults]
home_hero_image_url = "https://cdn.example.org/hero.jpg"
about_gallery_images_urls = ["https://cdn.example.org/1.jpg", "https://cdn.example.org/2.jpg"]

[[hooks]]
command = ["notify-slack", "--channel", "donations"]
events = ["created"]
timeout = 30

[[hooks]]
command = ["echo $DONATION_ID >> /tmp/donations.log"]
`
	clearEnv(t)
	path := setup(t, file)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "https://hopebridge.org", config.Server.Hostname)
	assert.EqualValues(t, 80, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.BindAddress)
	assert.Equal(t, "/var/www/site", config.Server.WebDir)
	assert.Equal(t, "admin", config.Server.AdminUser)
	assert.Equal(t, "secret", config.Server.AdminPassword)

	assert.Equal(t, "/var/log/hopebridge.log", config.Log.Filename)
	assert.EqualValues(t, 10, config.Log.MaxSize)
	assert.EqualValues(t, model.DefaultLogMaxAge, config.Log.MaxAge)

	assert.Equal(t, db.BackendPostgres, config.Database.Backend)
	assert.Equal(t, "postgres://localhost/hopebridge", config.Database.PostgresURL)

	assert.Equal(t, fs.TypeS3, config.Storage.Type)
	assert.Equal(t, "hopebridge-media", config.Storage.S3.Bucket)
	assert.Equal(t, "us-east-1", config.Storage.S3.Region)
	assert.Equal(t, "uploads", config.Storage.S3.Prefix)
	assert.Empty(t, config.Storage.Local.DataDir)

	assert.EqualValues(t, 1<<20, config.Upload.MaxImageSize)
	assert.EqualValues(t, model.DefaultMaxVideoSize, config.Upload.MaxVideoSize)

	assert.Equal(t, model.CurrencyGBP, config.Donations.Currency)
	assert.Equal(t, "https://pay.example.org/checkout", config.Donations.CheckoutURL)
	assert.EqualValues(t, 300, config.Donations.MinAmount["eur"])

	assert.Equal(t, "redis://localhost:6379/0", config.Stats.RedisURL)

	assert.Equal(t, "https://formspree.io/f/abc", config.Contact.Endpoint)
	assert.Equal(t, 5*time.Second, config.Contact.Timeout.Duration)

	require.Len(t, config.Media.Defaults, 2)
	assert.EqualValues(t, []string{"https://cdn.example.org/hero.jpg"}, config.Media.Defaults["home_hero_image_url"])
	assert.Len(t, config.Media.Defaults["about_gallery_images_urls"], 2)

	require.Len(t, config.Hooks, 2)
	assert.Equal(t, []string{"notify-slack", "--channel", "donations"}, config.Hooks[0].Command)
	assert.Equal(t, []string{"created"}, config.Hooks[0].Events)
	assert.Equal(t, 30, config.Hooks[0].Timeout)
	assert.Equal(t, []string{"echo $DONATION_ID >> /tmp/donations.log"}, config.Hooks[1].Command)
	assert.Empty(t, config.Hooks[1].Events)
}

func TestApplyDefaults(t *testing.T) {
	clearEnv(t)
	path := setup(t, "")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)

	assert.EqualValues(t, server.DefaultPort, config.Server.Port)
	assert.Equal(t, "http://localhost:8080", config.Server.Hostname)
	assert.Equal(t, db.BackendBadger, config.Database.Backend)
	assert.Equal(t, filepath.Join(dir, "db"), config.Database.Dir)
	assert.Equal(t, fs.TypeLocal, config.Storage.Type)
	assert.Equal(t, filepath.Join(dir, "uploads"), config.Storage.Local.DataDir)
	assert.EqualValues(t, model.DefaultMaxImageSize, config.Upload.MaxImageSize)
	assert.EqualValues(t, model.DefaultMaxVideoSize, config.Upload.MaxVideoSize)
	assert.Empty(t, config.Log.Filename)
	assert.Zero(t, config.Log.MaxSize)
}

func TestDefaultHostname(t *testing.T) {
	cfg := Config{Server: server.Config{Port: 80}}
	cfg.applyDefaults("/config.toml")
	assert.Equal(t, "http://localhost", cfg.Server.Hostname)

	cfg = Config{Server: server.Config{Port: 7979}}
	cfg.applyDefaults("/config.toml")
	assert.Equal(t, "http://localhost:7979", cfg.Server.Hostname)

	cfg = Config{Server: server.Config{Hostname: "https://example.org"}}
	cfg.applyDefaults("/config.toml")
	assert.Equal(t, "https://example.org", cfg.Server.Hostname)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAdminPassword, "from-env")
	t.Setenv(envCookieSecret, "cookie")
	t.Setenv(envRedisURL, "redis://cache:6379")
	t.Setenv(envContactEndpoint, "https://formspree.io/f/env")
	t.Setenv(envPort, "3000")

	path := setup(t, `
[server]
admin_user = "admin"

[stats]
redis_url = "redis://from-file:6379"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", config.Server.AdminPassword)
	assert.Equal(t, "cookie", config.Server.CookieSecret)
	assert.Equal(t, "redis://from-file:6379", config.Stats.RedisURL)
	assert.Equal(t, "https://formspree.io/f/env", config.Contact.Endpoint)
	assert.EqualValues(t, 3000, config.Server.Port)
	assert.Equal(t, "http://localhost:3000", config.Server.Hostname)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)

	path := setup(t, `
[server]
admin_user = "admin"

[database]
backend = "postgres"

[storage]
type = "s3"

[upload]
max_video_size = -1

[media.defaults]
logo_url = "https://cdn.example.org/logo.png"

[[hooks]]
events = ["created"]

[[hooks]]
command = ["true"]
events = ["deleted"]
`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 8)
}

func TestLoadConfig_MinAmountFloor(t *testing.T) {
	clearEnv(t)
	path := setup(t, `
[donations.min_amount]
usd = 0
gbp = 50
`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 2)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	clearEnv(t)
	path := setup(t, `
[database]
backend = "mongo"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadBadgerConfig(t *testing.T) {
	clearEnv(t)
	path := setup(t, `
[database]
  [database.badger]
  truncate = true
  file_io = true
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config.Database.Badger)

	assert.True(t, config.Database.Badger.Truncate)
	assert.True(t, config.Database.Badger.FileIO)
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{envAdminPassword, envCookieSecret, envPostgresURL, envRedisURL, envContactEndpoint, envPort} {
		t.Setenv(key, "")
	}
}

func setup(t *testing.T, file string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(file), 0600)
	require.NoError(t, err)

	return path
}
