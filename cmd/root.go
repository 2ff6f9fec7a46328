package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/golangdaddy/circuit/pkg/clock"
	"github.com/golangdaddy/circuit/pkg/config"
	"github.com/golangdaddy/circuit/pkg/game"
	"github.com/golangdaddy/circuit/pkg/host"
	"github.com/golangdaddy/circuit/pkg/log"
	"github.com/golangdaddy/circuit/pkg/race"
)

const envPrefix = "CIRCUIT"

// Version is set at build time.
var Version = "dev"

var cfgFile string

// stderr receives flag binding problems.
var stderr io.Writer = os.Stderr

// rootCmd opens the track designer window
var rootCmd = &cobra.Command{
	Use:     "circuit",
	Short:   "Freehand race track designer with a driving minigame",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(config.FromViper(viper.GetViper()))
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	def := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.circuit.yml)")
	flags.String(config.KeyTitle, def.Title, "window title")
	flags.Float64(config.KeyTrackWidth, def.TrackWidth, "initial track width in pixels (20-80)")
	flags.String(config.KeyBlockID, def.BlockID, "block id sent with the completion signal")
	flags.String(config.KeyNATSURL, "", "also publish the completion signal to this NATS server")
	flags.String(config.KeyNATSSubject, def.NATSSubject, "NATS subject for the completion signal")
	flags.Int64(config.KeySeed, 0, "grass texture seed (0 picks one at start)")
	flags.Bool(config.KeySkipTitle, false, "open straight into the designer")
	flags.Bool(config.KeySummary, def.Summary, "print the lap table on exit")
	flags.String(config.KeyLogLevel, def.LogLevel, "log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, def.LogFormat, "log format (console, json)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".circuit")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --track-width to CIRCUIT_TRACK_WIDTH
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(stderr, "Could not bind env var %s: %v\n", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.PersistentFlags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(stderr, "Could not set flag value for %s: %v\n", f.Name, err)
			}
		}
	})
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	logger := log.Logger
	defer func() { _ = logger.Sync() }()

	targets := []host.Notifier{host.LogNotifier{Logger: logger}}
	if cfg.NATSURL != "" {
		nc, err := host.DialNATS(cfg.NATSURL, cfg.BlockID)
		if err != nil {
			// the designer still runs without the shell signal
			logger.Warn("nats unavailable", zap.Error(err))
		} else {
			defer nc.Close()
			targets = append(targets, host.NewNATSNotifier(nc, cfg.NATSSubject))
		}
	}

	g := game.NewGame(game.Options{
		Title:      cfg.Title,
		TrackWidth: cfg.TrackWidth,
		Seed:       cfg.Seed,
		SkipTitle:  cfg.SkipTitle,
		BlockID:    cfg.BlockID,
		Clock:      clock.Real{},
		Logger:     logger,
		Notifier:   host.NewBroadcaster(logger, targets...),
	})

	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle(cfg.Title)
	logger.Info("starting", zap.String("title", cfg.Title), zap.Float64("trackWidth", cfg.TrackWidth))
	runErr := ebiten.RunGame(g)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g.Close(ctx)

	if d := g.Designer(); cfg.Summary && d != nil {
		race.WriteSummary(os.Stdout, d.Laps, d.BestLap)
	}
	return errors.Wrap(runErr, "run game")
}
