package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hopebridge/hopebridge/pkg/contact"
	"github.com/hopebridge/hopebridge/pkg/db"
	"github.com/hopebridge/hopebridge/pkg/donation"
	"github.com/hopebridge/hopebridge/pkg/fs"
	"github.com/hopebridge/hopebridge/pkg/hook"
	"github.com/hopebridge/hopebridge/pkg/media"
	"github.com/hopebridge/hopebridge/pkg/model"
	"github.com/hopebridge/hopebridge/pkg/server"
	"github.com/hopebridge/hopebridge/pkg/upload"
)

type Config struct {
	// Server is the web server configuration
	Server server.Config `toml:"server"`
	// Log is the optional logging configuration
	Log Log `toml:"log"`
	// Database configuration
	Database db.Config `toml:"database"`
	// Storage is where uploaded media goes
	Storage fs.Config `toml:"storage"`
	// Upload limits
	Upload upload.Config `toml:"upload"`
	// Donations configures the donation form
	Donations donation.Config `toml:"donations"`
	// Stats configures donation counters
	Stats Stats `toml:"stats"`
	// Contact configures the contact form relay
	Contact contact.Config `toml:"contact"`
	// Media holds default slot URLs
	Media media.Config `toml:"media"`
	// Hooks run on donation events
	Hooks []*hook.ExecHook `toml:"hooks"`
}

type Log struct {
	// Filename to write the log to (instead of stdout)
	Filename string `toml:"filename"`
	// MaxSize is the maximum size of the log file in MB
	MaxSize int `toml:"max_size"`
	// MaxBackups is the maximum number of log file backups to keep after rotation
	MaxBackups int `toml:"max_backups"`
	// MaxAge is the maximum number of days to keep the logs for
	MaxAge int `toml:"max_age"`
	// Compress old backups
	Compress bool `toml:"compress"`
}

type Stats struct {
	// RedisURL enables persistent counters, e.g. redis://localhost:6379/0
	RedisURL string `toml:"redis_url"`
}

// Secrets may be left out of the file and passed through the environment instead
const (
	envAdminPassword   = "HOPEBRIDGE_ADMIN_PASSWORD"
	envCookieSecret    = "HOPEBRIDGE_COOKIE_SECRET"
	envPostgresURL     = "HOPEBRIDGE_POSTGRES_URL"
	envRedisURL        = "HOPEBRIDGE_REDIS_URL"
	envContactEndpoint = "HOPEBRIDGE_CONTACT_ENDPOINT"
	envPort            = "PORT"
)

// LoadConfig loads TOML configuration from a file path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	config := Config{}
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal toml")
	}

	config.applyEnv()
	config.applyDefaults(path)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	override := func(value *string, key string) {
		if *value != "" {
			return
		}
		*value = strings.TrimSpace(os.Getenv(key))
	}

	override(&c.Server.AdminPassword, envAdminPassword)
	override(&c.Server.CookieSecret, envCookieSecret)
	override(&c.Database.PostgresURL, envPostgresURL)
	override(&c.Stats.RedisURL, envRedisURL)
	override(&c.Contact.Endpoint, envContactEndpoint)

	// Hosting platforms pass the port to bind to
	if c.Server.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv(envPort)); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) validate() error {
	var result *multierror.Error

	switch c.Database.Backend {
	case db.BackendBadger, db.BackendMemory:
	case db.BackendPostgres:
		if c.Database.PostgresURL == "" {
			result = multierror.Append(result, errors.New("postgres_url is required for the postgres backend"))
		}
	default:
		result = multierror.Append(result, errors.Errorf("unsupported database backend %q", c.Database.Backend))
	}

	switch c.Storage.Type {
	case fs.TypeLocal:
		if c.Storage.Local.DataDir == "" {
			result = multierror.Append(result, errors.New("storage data directory is required"))
		}
	case fs.TypeS3:
		if c.Storage.S3.Bucket == "" {
			result = multierror.Append(result, errors.New("s3 bucket is required"))
		}
		if c.Storage.S3.Region == "" && c.Storage.S3.EndpointURL == "" {
			result = multierror.Append(result, errors.New("s3 region or endpoint_url is required"))
		}
	default:
		result = multierror.Append(result, errors.Errorf("unknown storage type %q", c.Storage.Type))
	}

	if c.Server.AdminUser != "" && c.Server.AdminPassword == "" {
		result = multierror.Append(result, errors.Errorf("admin password is required when admin_user is set (or set %s)", envAdminPassword))
	}

	if c.Upload.MaxImageSize < 0 || c.Upload.MaxVideoSize < 0 {
		result = multierror.Append(result, errors.New("upload size limits can't be negative"))
	}

	if err := c.Donations.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	for name := range c.Media.Defaults {
		if _, err := media.ParseKey(name); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "media default %q", name))
		}
	}

	for i, h := range c.Hooks {
		if h == nil || len(h.Command) == 0 {
			result = multierror.Append(result, errors.Errorf("hook #%d: command is required", i+1))
			continue
		}
		for _, event := range h.Events {
			if event != donation.EventCreated && event != donation.EventStatusChanged {
				result = multierror.Append(result, errors.Errorf("hook #%d: unknown event %q", i+1, event))
			}
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) applyDefaults(configPath string) {
	if c.Server.Port == 0 {
		c.Server.Port = server.DefaultPort
	}

	if c.Server.Hostname == "" {
		if c.Server.Port != 80 {
			c.Server.Hostname = "http://localhost:" + strconv.Itoa(c.Server.Port)
		} else {
			c.Server.Hostname = "http://localhost"
		}
	}

	c.Server.Hostname = strings.TrimSuffix(c.Server.Hostname, "/")

	if c.Log.Filename != "" {
		if c.Log.MaxSize == 0 {
			c.Log.MaxSize = model.DefaultLogMaxSize
		}
		if c.Log.MaxAge == 0 {
			c.Log.MaxAge = model.DefaultLogMaxAge
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = model.DefaultLogMaxBackups
		}
	}

	if c.Database.Backend == "" {
		c.Database.Backend = db.BackendBadger
	}

	if c.Database.Dir == "" {
		c.Database.Dir = filepath.Join(filepath.Dir(configPath), "db")
	}

	if c.Storage.Type == "" {
		c.Storage.Type = fs.TypeLocal
	}

	if c.Storage.Type == fs.TypeLocal && c.Storage.Local.DataDir == "" {
		c.Storage.Local.DataDir = filepath.Join(filepath.Dir(configPath), "uploads")
	}

	if c.Upload.MaxImageSize == 0 {
		c.Upload.MaxImageSize = model.DefaultMaxImageSize
	}

	if c.Upload.MaxVideoSize == 0 {
		c.Upload.MaxVideoSize = model.DefaultMaxVideoSize
	}
}
