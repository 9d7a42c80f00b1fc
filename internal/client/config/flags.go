package config

import (
	"flag"
	"os"

	"github.com/adminfiles/cli/internal/flagx"
)

// EnvAPIBaseURL overrides the backend origin, the same knob the web build
// exposes for pointing the client at a non-default API host.
const EnvAPIBaseURL = "ADMINFILES_API_URL"

// parseEnv overlays cfg with values from the environment.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-db string  path of the local client database
//
// The function filters os.Args down to the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabaseFile, "db", cfg.DatabaseFile, "path of the local client database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
