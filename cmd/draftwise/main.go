// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the draftwise CLI. Each workflow step
// is a subcommand; the workspace lives in a project pack file between runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/draftwise/internal/generate"
	"github.com/pdiddy/draftwise/internal/pack"
	"github.com/pdiddy/draftwise/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the draftwise CLI.
var rootCmd = &cobra.Command{
	Use:   "draftwise",
	Short: "Guided research assistant for student papers",
	Long: `draftwise walks a student through a research project: pick a topic,
build a plan, choose or analyze a dataset, draft paper sections, and get
feedback on a section or a full paper.

Run "draftwise init" first. Every step after that reads and updates the
project pack file named by --workspace.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./draftwise.yaml or ~/.config/draftwise/config.yaml)")
	pf.String("workspace", pack.DefaultFileName, "project pack file holding the workspace")
	pf.String("provider", "gemini", "text-generation provider: gemini or claude")
	pf.String("model", "", "model identifier sent with every request (default: "+generate.DefaultModel+" for gemini, "+generate.DefaultClaudeModel+" for claude)")
	pf.Duration("timeout", 0, "HTTP timeout for generation requests (0 = no limit)")
	pf.String("log-mode", "", "structured log output: dev, prod or off")

	for key, flag := range map[string]string{
		"workspace": "workspace",
		"provider":  "provider",
		"model":     "model",
		"timeout":   "timeout",
		"log_mode":  "log-mode",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("draftwise")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "draftwise"))
		}
	}

	viper.SetEnvPrefix("DRAFTWISE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
