// Package config loads planner settings from .dayplan.yaml, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/dayplan/pkg/notify"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. DAYPLAN_USER.
	EnvPrefix = "DAYPLAN"
	// PathEnv adds a directory to the config search path.
	PathEnv = "DAYPLAN_CONFIG_PATH"
	// FileName is the config file name without extension.
	FileName = ".dayplan"
)

// Config is the resolved planner configuration.
type Config struct {
	User          string            `json:"user" yaml:"user"`
	TickInterval  time.Duration     `json:"tickInterval" yaml:"tickInterval"`
	ToastTTL      time.Duration     `json:"toastTTL" yaml:"toastTTL"`
	Notifications notify.Permission `json:"notifications" yaml:"notifications"`
	SpoolDir      string            `json:"spoolDir,omitempty" yaml:"spoolDir,omitempty"`
	Seed          bool              `json:"seed" yaml:"seed"`
	File          string            `json:"file,omitempty" yaml:"file,omitempty"`
}

// Loader reads configuration and can watch the config file for edits.
type Loader struct {
	v    *viper.Viper
	once sync.Once
}

// NewLoader prepares the search path: DAYPLAN_CONFIG_PATH, the working
// directory and the home directory, in that order.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault("user", defaultUser())
	v.SetDefault("tick_interval", notify.DefaultPeriod.String())
	v.SetDefault("toast_ttl", notify.DefaultToastTTL.String())
	v.SetDefault("notifications", string(notify.Default))
	v.SetDefault("spool_dir", "")
	v.SetDefault("seed", true)

	v.SetConfigName(FileName) // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return &Loader{v: v}
}

// Viper exposes the underlying instance so commands can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads .env and the config file and resolves a Config. A missing
// config file is not an error.
func (l *Loader) Load() (Config, error) {
	l.once.Do(func() {
		// .env only seeds variables that are not already set.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "config: load .env: %v\n", err)
		}
	})

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", l.v.ConfigFileUsed(), err)
		}
	}
	return l.resolve()
}

func (l *Loader) resolve() (Config, error) {
	tick, err := time.ParseDuration(l.v.GetString("tick_interval"))
	if err != nil || tick <= 0 {
		return Config{}, fmt.Errorf("config: tick_interval %q: must be a positive duration", l.v.GetString("tick_interval"))
	}
	ttl, err := time.ParseDuration(l.v.GetString("toast_ttl"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("config: toast_ttl %q: must be a positive duration", l.v.GetString("toast_ttl"))
	}
	perm, err := notify.ParsePermission(l.v.GetString("notifications"))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	spool := strings.TrimSpace(l.v.GetString("spool_dir"))
	if spool != "" {
		if spool, err = homedir.Expand(spool); err != nil {
			return Config{}, fmt.Errorf("config: spool_dir: %w", err)
		}
	}
	return Config{
		User:          strings.TrimSpace(l.v.GetString("user")),
		TickInterval:  tick,
		ToastTTL:      ttl,
		Notifications: perm,
		SpoolDir:      spool,
		Seed:          l.v.GetBool("seed"),
		File:          l.v.ConfigFileUsed(),
	}, nil
}

// Watch calls fn with the new configuration whenever the config file
// changes. Invalid edits are reported through onErr and otherwise ignored.
// Watching only starts when a config file was found.
func (l *Loader) Watch(fn func(Config), onErr func(error)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		cfg, err := l.resolve()
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		fn(cfg)
	})
	l.v.WatchConfig()
	return true
}

// Load is a convenience for NewLoader().Load().
func Load() (Config, error) {
	return NewLoader().Load()
}

func defaultUser() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if u := strings.TrimSpace(os.Getenv(k)); u != "" {
			return u
		}
	}
	return ""
}
