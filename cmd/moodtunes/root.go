package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/moodtunes/internal/config"
	"github.com/justestif/moodtunes/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "moodtunes",
		Short:         "Recommend songs that match a mood",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			if cfg.Log.Format == "" {
				cfg.Log.Format = defaultLogFormat(cmd)
			}
			logging.Init(logging.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: os.Stderr,
			})
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $MOODTUNES_CONFIG or ./moodtunes.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")

	cmd.AddCommand(
		newRecommendCmd(opts),
		newResolveCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// defaultLogFormat is JSON for the server and console for one-shot commands.
func defaultLogFormat(cmd *cobra.Command) string {
	if cmd.Name() == "serve" {
		return "json"
	}
	return "console"
}
