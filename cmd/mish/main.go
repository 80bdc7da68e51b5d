// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/marcelocantos/mish/internal/builtin"
	"github.com/marcelocantos/mish/internal/cli"
	"github.com/marcelocantos/mish/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath string
		verbose bool
		command string
		code    int
	)

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.LoadFrom(afero.NewOsFs(), cfgPath)
		if err != nil {
			return nil, err
		}
		if verbose {
			cfg.Verbose = true
		}
		return cfg, nil
	}

	reg := builtin.NewRegistry()
	builtin.RegisterAll(reg)

	rootCmd := &cobra.Command{
		Use:           "mish",
		Short:         "A minimal interactive shell",
		Long:          cli.Usage(reg.All()),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess, log, err := cli.Start(cfg, os.Stdin, os.Stdout, os.Stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("command") {
				code = cli.RunCommand(cmd.Context(), sess, command)
				return nil
			}
			r, err := cli.NewLineReader(os.Stdin, os.Stdout, cfg.Prompt, cfg.HistorySize)
			if err != nil {
				return err
			}
			code = cli.RunInteractive(cmd.Context(), sess, r, log)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.ConfigPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report degraded redirections, interrupts and stage outcomes")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run one line and exit with its status")

	auditCmd := &cobra.Command{
		Use:   "audit <verify|show [n]>",
		Short: "Inspect the audit log",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			code = cli.RunAudit(cmd.OutOrStdout(), cfg.Audit.Path, args)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mish %s\n", version)
		},
	}

	rootCmd.AddCommand(auditCmd, versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "mish: %v\n", err)
		return 1
	}
	return code
}
