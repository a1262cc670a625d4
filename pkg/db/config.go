package db

const (
	BackendBadger   = "badger"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	// Backend is one of "badger" (default), "memory" or "postgres"
	Backend string `toml:"backend"`
	// Dir is a directory to keep database files
	Dir    string        `toml:"dir"`
	Badger *BadgerConfig `toml:"badger"`
	// PostgresURL is the connection string used by the postgres backend
	PostgresURL string `toml:"postgres_url"`
}
