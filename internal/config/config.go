package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// MaxReqPerSec bounds server.req_per_sec.
const MaxReqPerSec = 10000

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Analysis struct {
	Extended    bool     `toml:"extended"`
	Originality bool     `toml:"originality"`
	Delay       Duration `toml:"delay"`
	Language    string   `toml:"language"`
}

type Share struct {
	Origin string `toml:"origin"`
}

type Report struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

type Server struct {
	Addr      string  `toml:"addr"`
	ReqPerSec float64 `toml:"req_per_sec"`
}

// Config is the codecheck configuration file.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Share    Share    `toml:"share"`
	Report   Report   `toml:"report"`
	Server   Server   `toml:"server"`
}

// Duration decodes TOML strings such as "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: Analysis{Originality: true, Delay: Duration{time.Second}, Language: "auto"},
		Report:   Report{Dir: ".", Format: "pdf"},
		Server:   Server{Addr: ":8080", ReqPerSec: 20},
	}
}

func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "codecheck", "config.toml")
}

// Load reads path over the defaults and applies CODECHECK_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
			}
		}
	}

	if v := os.Getenv("CODECHECK_SHARE_ORIGIN"); v != "" {
		cfg.Share.Origin = v
	}
	if v := os.Getenv("CODECHECK_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CODECHECK_REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Analysis.Delay.Duration < 0 {
		return fmt.Errorf("%w: analysis.delay must not be negative", ErrInvalid)
	}
	if c.Server.ReqPerSec < 0 || c.Server.ReqPerSec > MaxReqPerSec {
		return fmt.Errorf("%w: server.req_per_sec must be between 0 and %d", ErrInvalid, MaxReqPerSec)
	}
	if o := strings.TrimSpace(c.Share.Origin); o != "" && !strings.Contains(o, "://") {
		return fmt.Errorf("%w: share.origin must be an absolute URL, got %q", ErrInvalid, o)
	}
	return nil
}
