package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hopebridge/hopebridge/pkg/contact"
	"github.com/hopebridge/hopebridge/pkg/db"
	"github.com/hopebridge/hopebridge/pkg/donation"
	"github.com/hopebridge/hopebridge/pkg/fs"
	"github.com/hopebridge/hopebridge/pkg/handler"
	"github.com/hopebridge/hopebridge/pkg/hook"
	"github.com/hopebridge/hopebridge/pkg/media"
	"github.com/hopebridge/hopebridge/pkg/server"
	"github.com/hopebridge/hopebridge/pkg/stats"
	"github.com/hopebridge/hopebridge/pkg/upload"
)

type Opts struct {
	ConfigPath string `long:"config" short:"c" default:"config.toml" env:"HOPEBRIDGE_CONFIG_PATH"`
	Debug      bool   `long:"debug"`
	NoBanner   bool   `long:"no-banner"`
}

const banner = `
 _   _                  ____       _     _
| | | | ___  _ __   ___| __ ) _ __(_) __| | __ _  ___
| |_| |/ _ \| '_ \ / _ \  _ \| '__| |/ _' |/ _' |/ _ \
|  _  | (_) | |_) |  __/ |_) | |  | | (_| | (_| |  __/
|_| |_|\___/| .__/ \___|____/|_|  |_|\__,_|\__, |\___|
            |_|                            |___/
`

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	// Missing .env is fine, real deployments pass the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env file")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	// Parse args
	opts := Opts{}
	_, err := flags.Parse(&opts)
	if err != nil {
		log.WithError(err).Fatal("failed to parse command line arguments")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	// Load TOML file
	log.Debugf("loading configuration %q", opts.ConfigPath)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration file")
	}

	if cfg.Log.Filename != "" {
		log.Infof("writing logs to %s", cfg.Log.Filename)
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.Filename,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	if !opts.NoBanner {
		log.Info(banner)
	}

	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("running hopebridge")

	database, err := db.Open(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	defer func() {
		if err := database.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	storage, err := fs.New(cfg.Storage, cfg.Server.Hostname+fs.LocalPrefix)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}

	counters := newStats(cfg)
	defer func() {
		if err := counters.Close(); err != nil {
			log.WithError(err).Error("failed to close stats")
		}
	}()

	runner := hook.NewRunner(cfg.Hooks)

	donations, err := donation.NewService(database, cfg.Donations,
		donation.WithStats(counters),
		donation.WithHooks(runner),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create donation service")
	}

	slots, err := media.NewService(database, cfg.Media)
	if err != nil {
		log.WithError(err).Fatal("failed to create media service")
	}

	uploads := upload.NewService(storage, cfg.Upload)
	relay := contact.NewRelay(cfg.Contact)

	if cfg.Contact.Endpoint == "" {
		log.Warn("contact form endpoint is not configured, messages will be rejected")
	}

	handlerOpts := handler.Opts{
		CookieSecret:  cfg.Server.CookieSecret,
		AdminUser:     cfg.Server.AdminUser,
		AdminPassword: cfg.Server.AdminPassword,
		WebDir:        cfg.Server.WebDir,
		MaxUploadSize: 4 * cfg.Upload.MaxVideoSize,
	}

	// Uploads kept on disk are served by this process, S3 objects are linked directly
	if cfg.Storage.Type == fs.TypeLocal {
		handlerOpts.Files = storage
	}

	srv := server.New(cfg.Server, handler.New(donations, slots, uploads, relay, counters, handlerOpts))

	group.Go(func() error {
		log.Infof("running listener at %s", srv.Addr)
		return srv.ListenAndServe()
	})

	group.Go(func() error {
		// Shutdown web server
		defer func() {
			log.Info("shutting down web server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("server shutdown failed")
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			cancel()
			return nil
		}
	})

	if err := group.Wait(); err != nil && (err != context.Canceled && err != http.ErrServerClosed) {
		log.WithError(err).Error("wait error")
	}

	log.Info("waiting for hooks to finish")
	runner.Wait()

	log.Info("gracefully stopped")
}

func newStats(cfg *Config) stats.Stats {
	if cfg.Stats.RedisURL == "" {
		log.Info("redis_url is not set, donation stats are disabled")
		return stats.Noop{}
	}

	redis, err := stats.NewRedisStats(cfg.Stats.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return redis
}
