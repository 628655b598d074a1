package config

import (
	"flag"
	"io"
)

// flagValues keeps parsed flags apart from Config so that only flags given
// explicitly override JSON and environment values.
type flagValues struct {
	values     Config
	set        map[string]bool
	configPath string
}

// NewFlagSet describes the global flags. Values are bound to cfg.
func NewFlagSet(cfg *Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("quicknotes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the database file")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: bolt, sqlite or memory")
	fs.StringVar(configPath, "config", "", "path to a JSON config file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.HashProfile, "hash-profile", cfg.HashProfile, "password hashing profile: default or fast")
	fs.StringVar(&cfg.Password, "password", "", "account password (insecure, prefer -password-file)")
	fs.StringVar(&cfg.PasswordFile, "password-file", "", "file containing the account password")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")

	return fs
}

func parseFlags(args []string, defaults *Config) (*flagValues, error) {
	fl := &flagValues{values: *defaults, set: make(map[string]bool)}

	fs := NewFlagSet(&fl.values, &fl.configPath)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		fl.set[f.Name] = true
	})
	fl.values.Args = fs.Args()

	return fl, nil
}

// apply copies explicitly given flags into cfg.
func (fl *flagValues) apply(cfg *Config) {
	if fl.set["db"] {
		cfg.DBPath = fl.values.DBPath
	}
	if fl.set["backend"] {
		cfg.Backend = fl.values.Backend
	}
	if fl.set["log-level"] {
		cfg.LogLevel = fl.values.LogLevel
	}
	if fl.set["hash-profile"] {
		cfg.HashProfile = fl.values.HashProfile
	}
	cfg.Password = fl.values.Password
	cfg.PasswordFile = fl.values.PasswordFile
	cfg.ShowVersion = fl.values.ShowVersion
	cfg.Args = fl.values.Args
}
