package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

const (
	DefaultFrequency = 5 // seconds
	DefaultTimeout   = 5 // seconds
	LogFileName      = "ping.log"
)

// Config is the validated, immutable configuration of one probe run.
type Config struct {
	Target    string
	Duration  time.Duration // 0 runs until cancelled
	Frequency time.Duration // wait between the end of one probe and the next
	Timeout   time.Duration // bound on a single probe
	Verbose   bool
	Log       LogConfig
}

type LogConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// File is the raw, unvalidated form, as read from TOML and overridden by
// command-line flags. Durations are whole seconds.
type File struct {
	Target    string  `toml:"target"`
	Duration  int     `toml:"duration"`
	Frequency int     `toml:"frequency"`
	Timeout   int     `toml:"timeout"`
	Verbose   bool    `toml:"verbose"`
	Log       LogFile `toml:"log"`
}

type LogFile struct {
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

func Default() File {
	return File{
		Frequency: DefaultFrequency,
		Timeout:   DefaultTimeout,
	}
}

// Load decodes the TOML file at path over f. Keys absent from the file keep
// their current value; unknown keys are an error.
func Load(path string, f *File) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file not found: %w", err)
	}

	md, err := toml.DecodeFile(path, f)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Build validates f and converts it into a Config. Every problem found is
// reported, not just the first.
func (f File) Build() (Config, error) {
	var errs error

	target := strings.TrimSpace(f.Target)
	if target == "" {
		errs = multierr.Append(errs, fmt.Errorf("target is required"))
	} else if err := validateTarget(target); err != nil {
		errs = multierr.Append(errs, err)
	}

	if f.Duration < 0 {
		errs = multierr.Append(errs, fmt.Errorf("duration must be >= 0, got %d", f.Duration))
	}
	if f.Frequency <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("frequency must be > 0, got %d", f.Frequency))
	}
	if f.Timeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("timeout must be > 0, got %d", f.Timeout))
	}
	if f.Log.MaxSizeMB < 0 {
		errs = multierr.Append(errs, fmt.Errorf("log.max_size_mb must be >= 0"))
	}
	if f.Log.MaxBackups < 0 {
		errs = multierr.Append(errs, fmt.Errorf("log.max_backups must be >= 0"))
	}
	if f.Log.MaxAgeDays < 0 {
		errs = multierr.Append(errs, fmt.Errorf("log.max_age_days must be >= 0"))
	}

	logPath := strings.TrimSpace(f.Log.Path)
	if logPath == "" {
		p, err := DefaultLogPath()
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		logPath = p
	}

	if errs != nil {
		return Config{}, errs
	}

	return Config{
		Target:    target,
		Duration:  time.Duration(f.Duration) * time.Second,
		Frequency: time.Duration(f.Frequency) * time.Second,
		Timeout:   time.Duration(f.Timeout) * time.Second,
		Verbose:   f.Verbose,
		Log: LogConfig{
			Path:       logPath,
			MaxSizeMB:  f.Log.MaxSizeMB,
			MaxBackups: f.Log.MaxBackups,
			MaxAgeDays: f.Log.MaxAgeDays,
			Compress:   f.Log.Compress,
		},
	}, nil
}

func validateTarget(target string) error {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid target %q: scheme must be http or https", target)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid target %q: missing host", target)
	}
	return nil
}

// DefaultLogPath is ping.log next to the running executable.
func DefaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), LogFileName), nil
}

// Warnings lists legal but suspicious settings worth surfacing at startup.
func Warnings(cfg Config) []string {
	var out []string
	if cfg.Timeout >= cfg.Frequency {
		out = append(out, "timeout is not shorter than frequency; a hung target stretches every interval")
	}
	if strings.HasPrefix(cfg.Target, "http://") {
		out = append(out, "target uses plain http")
	}
	if cfg.Duration > 0 && cfg.Duration < cfg.Frequency {
		out = append(out, "duration is shorter than frequency; only one probe will run")
	}
	return out
}
