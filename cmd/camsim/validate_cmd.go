// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManuGH/camlife/internal/config"
)

func newValidateConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate a configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(path).Load()
			if err != nil {
				return fmt.Errorf("configuration error in %s: %w", path, err)
			}
			if _, err := machineConfig(cfg); err != nil {
				return err
			}
			if _, err := sessionDescriptor(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "path to YAML configuration file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
