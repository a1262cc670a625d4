package media

import "github.com/hopebridge/hopebridge/pkg/config"

type Config struct {
	// Defaults maps slot keys to the URLs used until an admin assigns their own.
	// List slots (ending with _urls) accept an array.
	Defaults map[string]config.StringSlice `toml:"defaults"`
}
