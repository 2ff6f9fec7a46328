package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/golangdaddy/circuit/pkg/host"
	"github.com/golangdaddy/circuit/pkg/models"
)

// Config keys, shared by flags, config file and environment
const (
	KeyTitle       = "title"
	KeyTrackWidth  = "track-width"
	KeyBlockID     = "block-id"
	KeyNATSURL     = "nats-url"
	KeyNATSSubject = "nats-subject"
	KeySeed        = "seed"
	KeySkipTitle   = "skip-title"
	KeySummary     = "summary"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved configuration of the designer
type Config struct {
	Title       string  // window and panel title
	TrackWidth  float64 // initial track width in pixels
	BlockID     string  // id sent with the completion signal
	NATSURL     string  // completion signal is also published here when set
	NATSSubject string  // subject for the completion signal
	Seed        int64   // grass texture seed, 0 picks one from the clock
	SkipTitle   bool    // open straight into the designer
	Summary     bool    // print the lap table on exit
	LogLevel    string  // zap level name
	LogFormat   string  // console or json
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Title:       "Circuit Designer",
		TrackWidth:  models.DefaultTrackWidth,
		BlockID:     host.DefaultBlockID,
		NATSSubject: host.DefaultSubject,
		Summary:     true,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// FromViper reads the configuration from v.
func FromViper(v *viper.Viper) Config {
	return Config{
		Title:       v.GetString(KeyTitle),
		TrackWidth:  v.GetFloat64(KeyTrackWidth),
		BlockID:     v.GetString(KeyBlockID),
		NATSURL:     v.GetString(KeyNATSURL),
		NATSSubject: v.GetString(KeyNATSSubject),
		Seed:        v.GetInt64(KeySeed),
		SkipTitle:   v.GetBool(KeySkipTitle),
		Summary:     v.GetBool(KeySummary),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TrackWidth < models.MinTrackWidth || c.TrackWidth > models.MaxTrackWidth {
		return errors.Wrapf(ErrInvalid, "track width %v outside [%d, %d]",
			c.TrackWidth, models.MinTrackWidth, models.MaxTrackWidth)
	}
	if c.BlockID == "" {
		return errors.Wrap(ErrInvalid, "block id must not be empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Wrapf(ErrInvalid, "unknown log format %q", c.LogFormat)
	}
	return nil
}
