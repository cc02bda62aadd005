// Package cmd provides the entrypoint for the gh-transfer-issue cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         = helpers.NewNoopLogger()
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for the gh-transfer-issue.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gh-transfer-issue",
		Short:         "Transfer a labeled issue to another repository of the same owner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("config") {
				if err := reloadConfig(cmd.Flags()); err != nil {
					return err
				}
			}
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = helpers.NewLogger(os.Stdout,
				config.Global.Logging.Verbosity,
				config.Global.Logging.CallerTrace,
				config.Enabled(config.Transfer.Debug),
			).With("mode", config.Global.Mode)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch config.Global.Mode {
			case config.ModeAction:
				return runAction(cmd.Context())
			case config.ModeLambda:
				return reportError(runLambda(cmd.Context()))
			case config.ModeService:
				return reportError(runService(cmd.Context()))
			default:
				return reportError(fmt.Errorf("invalid mode: %s", config.Global.Mode))
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdAction(),
		cmdLambda(),
		cmdService(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapDuration)
}

// reloadConfig loads an explicitly requested configuration file.
// Command-line flags win over environment values, which win over the file.
func reloadConfig(flags *pflag.FlagSet) error {
	envs := envNames()
	explicit := make(map[*pflag.Flag]string)
	flags.VisitAll(func(f *pflag.Flag) {
		if v, found := lookupEnv(envs[f.Name]); found {
			explicit[f] = v
		}
	})
	flags.Visit(func(f *pflag.Flag) {
		explicit[f] = f.Value.String()
	})

	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		return err
	}

	var err error
	for f, v := range explicit {
		err = errors.Join(err, f.Value.Set(v))
	}
	if err != nil {
		return err
	}
	logger.Debug("configuration reloaded", slog.String("path", configFilePath))
	return nil
}

// reportError logs failures the action presenter does not already report.
func reportError(err error) error {
	if err != nil {
		logger.Error("command failed", slog.Any("error", err))
	}
	return err
}
