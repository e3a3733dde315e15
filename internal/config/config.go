// Package config loads ls-solar settings from an optional YAML file and
// LS_SOLAR_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cloudeng.io/errors"
	"github.com/spf13/viper"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/schedule"
)

// EnvPrefix is prepended to environment overrides, e.g. LS_SOLAR_LOCATION.
const EnvPrefix = "LS_SOLAR"

// ErrUnknownLocation is returned when a location name matches neither a
// configured location nor a preset.
var ErrUnknownLocation = stderrors.New("unknown location")

// LocationConfig describes a custom observing site.
type LocationConfig struct {
	Name      string  `mapstructure:"name"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Elevation float64 `mapstructure:"elevation"`
	Zone      float64 `mapstructure:"zone"`
}

func (l LocationConfig) location() astro.Location {
	return astro.Location{
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Elevation: l.Elevation,
		Zone:      l.Zone,
	}
}

// ScheduleConfig is a labelled cron or solar schedule spec.
type ScheduleConfig struct {
	Spec  string `mapstructure:"spec"`
	Label string `mapstructure:"label"`
}

// Config holds the resolved settings.
type Config struct {
	Location  string           `mapstructure:"location"`
	LogLevel  string           `mapstructure:"log_level"`
	Twilight  string           `mapstructure:"twilight"`
	Locations []LocationConfig `mapstructure:"locations"`
	Schedules []ScheduleConfig `mapstructure:"schedules"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("location", "urbana")
	v.SetDefault("log_level", "info")
	v.SetDefault("twilight", "civil")
}

// Load reads path (if non-empty), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems together.
func (c *Config) Validate() error {
	var errs errors.M

	for i, l := range c.Locations {
		if l.Name == "" {
			errs.Append(fmt.Errorf("locations[%d]: missing name", i))
		}
		if l.Latitude < -90 || l.Latitude > 90 {
			errs.Append(fmt.Errorf("locations[%d] %s: latitude %g out of range", i, l.Name, l.Latitude))
		}
		if l.Longitude < -180 || l.Longitude > 180 {
			errs.Append(fmt.Errorf("locations[%d] %s: longitude %g out of range", i, l.Name, l.Longitude))
		}
		if l.Zone < -12 || l.Zone > 14 {
			errs.Append(fmt.Errorf("locations[%d] %s: zone %g out of range", i, l.Name, l.Zone))
		}
	}

	if _, err := c.ResolveLocation(); err != nil {
		errs.Append(err)
	}

	tw, err := astro.ParseTwilight(c.Twilight)
	if err != nil {
		errs.Append(err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs.Append(fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	for i, s := range c.Schedules {
		if _, err := schedule.Parse(s.Spec, astro.Urbana, tw); err != nil {
			errs.Append(fmt.Errorf("schedules[%d] %s: %w", i, s.Label, err))
		}
	}

	return errs.Err()
}

// ResolveLocation resolves the configured location name against custom
// locations first, then presets.
func (c *Config) ResolveLocation() (astro.Location, error) {
	return c.Lookup(c.Location)
}

// Lookup resolves a location name.
func (c *Config) Lookup(name string) (astro.Location, error) {
	for _, l := range c.Locations {
		if strings.EqualFold(l.Name, name) {
			return l.location(), nil
		}
	}
	if loc, ok := astro.LookupLocation(name); ok {
		return loc, nil
	}
	return astro.Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
}

// TwilightKind returns the configured twilight depression.
func (c *Config) TwilightKind() astro.Twilight {
	tw, _ := astro.ParseTwilight(c.Twilight)
	return tw
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Entries returns the configured schedules.
func (c *Config) Entries() []schedule.Entry {
	out := make([]schedule.Entry, len(c.Schedules))
	for i, s := range c.Schedules {
		label := s.Label
		if label == "" {
			label = s.Spec
		}
		out[i] = schedule.Entry{Spec: s.Spec, Label: label}
	}
	return out
}
