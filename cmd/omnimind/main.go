// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the omnimind CLI: federated search,
// cited summaries, conversation memory and a thin skill router.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/config"
	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/internal/secrets"
	"github.com/pdiddy/omnimind/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appCfg is the validated configuration, loaded before every command.
	appCfg types.Config

	// logger writes to stderr so command output stays pipeable.
	logger = zap.NewNop()

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the omnimind CLI.
var rootCmd = &cobra.Command{
	Use:   "omnimind",
	Short: "Local personal assistant core: federated search, summaries and memory",
	Long: `omnimind fans a query out to several public search engines, merges and
deduplicates the answers, and can summarize the top results with a local or
hosted language model. Conversations are remembered across runs and used to
keep replies on topic.

Engines, the language model and the memory store are configured through
omnimind.yaml or OMNIMIND_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Log.Level = lvl
		}
		appCfg = cfg

		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./omnimind.yaml or ~/.config/omnimind/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "override log.level (debug, info, warn, error)")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("omnimind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "omnimind"))
		}
	}

	viper.SetEnvPrefix("OMNIMIND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
