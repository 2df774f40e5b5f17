package config

import (
	"flag"
	"os"

	"github.com/mlazarev/logbook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   store backend, sqlite or postgres
//	-d string   database DSN (file path for sqlite)
//	-l string   locale tag for user-facing messages
//
// Args are filtered to the flags owned here so other components' flags do
// not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "b", cfg.DatabaseDriver, "store backend (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "locale for user-facing messages")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
