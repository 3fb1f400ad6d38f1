package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional tally configuration file.
type Config struct {
	Cat   CatConfig   `toml:"cat"`
	Head  HeadConfig  `toml:"head"`
	WC    WCConfig    `toml:"wc"`
	Input InputConfig `toml:"input"`
}

// CatConfig holds defaults for `tally cat`.
type CatConfig struct {
	Number    *string `toml:"number"` // none, all or nonblank
	Width     *int    `toml:"width"`
	Separator *string `toml:"separator"`
}

// HeadConfig holds defaults for `tally head`.
type HeadConfig struct {
	Lines *int64 `toml:"lines"`
}

// WCConfig holds defaults for `tally wc`.
type WCConfig struct {
	Metrics []string `toml:"metrics"`
}

// InputConfig holds source options shared by every subcommand.
type InputConfig struct {
	Decompress *bool   `toml:"decompress"`
	BWLimit    *string `toml:"bwlimit"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tally", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file is not an error.
// Keys the Config does not know about are rejected so typos surface.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, &UnknownKeyError{Path: path, Key: undecoded[0].String()}
	}
	return cfg, nil
}

// UnknownKeyError reports a key in the config file that tally does not use.
type UnknownKeyError struct {
	Path string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return e.Path + ": unknown key " + e.Key
}
