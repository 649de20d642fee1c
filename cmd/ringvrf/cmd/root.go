// Package cmd implements the ringvrf command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/codahale/ringvrf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	log     *zap.Logger
	cfgFile string
	verbose bool
}

// NewRootCmd returns the root command with all subcommands attached. Flag values are resolved through v, which also
// reads RINGVRF_* environment variables and an optional config file.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ringvrf",
		Short: "Anonymous ring VRF signatures over Bandersnatch",
		Long: `ringvrf aggregates rings of public keys into commitments, signs inputs as an
anonymous member of a ring, and verifies signatures to recover VRF outputs.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.ringvrf.yaml)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log in human-readable form at debug level")

	root.AddCommand(
		newPublicKeyCmd(a),
		newAggregateCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
	)
	return root
}

// Execute runs the root command with the global viper instance, exiting non-zero on failure.
func Execute() {
	if err := NewRootCmd(viper.GetViper()).Execute(); err != nil {
		os.Exit(1)
	}
}

// init binds the executing command's flags, reads the environment and config file, and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	a.v.SetEnvPrefix("ringvrf")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", a.cfgFile, err)
		}
	} else {
		a.v.SetConfigName(".ringvrf")
		a.v.AddConfigPath("$HOME")
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var err error
	if a.verbose || a.v.GetBool("verbose") {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// srs loads the SRS named by the --srs flag.
func (a *app) srs() (*ringvrf.SRS, error) {
	path := a.v.GetString("srs")
	if path == "" {
		return nil, errors.New("--srs is required")
	}

	srs, err := ringvrf.LoadSRSFile(path)
	if err != nil {
		return nil, err
	}

	a.log.Debug("loaded SRS", zap.String("path", path), zap.Int("max_ring_size", srs.MaxRingSize()))
	return srs, nil
}

// keys parses the --ring flag.
func (a *app) keys() ([]ringvrf.PublicKey, error) {
	keys, err := ringvrf.ParseRing(a.v.GetString("ring"))
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: --ring is empty", ringvrf.ErrInvalidPublicKey)
	}
	return keys, nil
}

// ring builds the ring named by the --ring flag, over the domain selected by --ring-size or, if that is zero, by the
// number of keys.
func (a *app) ring(srs *ringvrf.SRS) (*ringvrf.Ring, error) {
	keys, err := a.keys()
	if err != nil {
		return nil, err
	}

	size := a.v.GetInt("ring-size")
	if size == 0 {
		size = len(keys)
	}

	params, err := ringvrf.Setup(srs, size)
	if err != nil {
		return nil, err
	}

	r, err := params.NewRing(keys)
	if err != nil {
		return nil, err
	}

	a.log.Debug("built ring",
		zap.Int("keys", len(keys)),
		zap.Int("capacity", params.Capacity()),
		zap.Int("domain_size", params.DomainSize()),
	)
	return r, nil
}

// addRingFlags adds the flags naming an SRS and a ring.
func addRingFlags(flags *pflag.FlagSet) {
	flags.String("srs", "", "path to the SRS file")
	flags.String("ring", "", "whitespace-separated hex-encoded public keys, in ring order")
	flags.Int("ring-size", 0, "ring size used to select the domain (default is the number of keys)")
}
