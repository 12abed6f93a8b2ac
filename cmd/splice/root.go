package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/pkg/logger"
)

const serviceName = "splice"

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once   sync.Once
	config *config.Config
	logger *zap.Logger
	err    error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

// ensure loads configuration and builds the logger once per process
func (c *commandContext) ensure() (*config.Config, *zap.Logger, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(serviceName, path)
		if err != nil {
			c.err = fmt.Errorf("load config: %w", err)
			return
		}
		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			cfg.Server.LogLevel = *c.logLevelFlag
		}

		log, err := logger.New(cfg.Server.ServiceName, cfg.Server.Environment, cfg.Server.LogLevel, cfg.Server.LogFormat)
		if err != nil {
			c.err = fmt.Errorf("create logger: %w", err)
			return
		}
		c.config = cfg
		c.logger = log
	})
	return c.config, c.logger, c.err
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "splice",
		Short:         "Single-track media timeline editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (defaults to $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMediaCommand(ctx))
	rootCmd.AddCommand(newScriptCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))

	return rootCmd
}
