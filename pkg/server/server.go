package server

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPort = 8080

	readHeaderTimeout = 10 * time.Second
	// Uploads of large videos need a generous body timeout
	readTimeout  = 10 * time.Minute
	writeTimeout = 2 * time.Minute
	idleTimeout  = 2 * time.Minute
)

type Config struct {
	// Hostname is the public base URL of the site, used for upload links
	Hostname string `toml:"hostname"`
	// Port is a server port to listen to
	Port int `toml:"port"`
	// Bind a specific IP addresses for server
	// "*": bind all IP addresses which is default option
	// localhost or 127.0.0.1  bind a single IPv4 address
	BindAddress string `toml:"bind_address"`
	// WebDir is an optional directory with the built site to serve
	WebDir string `toml:"web_dir"`
	// CookieSecret signs the session cookie
	CookieSecret string `toml:"cookie_secret"`
	// AdminUser and AdminPassword protect admin routes with basic auth
	AdminUser     string `toml:"admin_user"`
	AdminPassword string `toml:"admin_password"`
}

type Server struct {
	http.Server
}

func New(cfg Config, handler http.Handler) *Server {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	bindAddress := cfg.BindAddress
	if bindAddress == "*" {
		bindAddress = ""
	}

	srv := Server{}

	srv.Addr = fmt.Sprintf("%s:%d", bindAddress, port)
	srv.Handler = handler
	srv.ReadHeaderTimeout = readHeaderTimeout
	srv.ReadTimeout = readTimeout
	srv.WriteTimeout = writeTimeout
	srv.IdleTimeout = idleTimeout

	log.Debugf("using address: %s", srv.Addr)

	return &srv
}
