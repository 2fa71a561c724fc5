package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"leadform/internal/config"
	"leadform/internal/pkg/logger"
)

type cliState struct {
	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}
	var apiURL string

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Submit leads and inspect reference data from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadEnv([]string{".env", ".env.local"}); err != nil {
				return fmt.Errorf("load env files: %w", err)
			}
			if apiURL != "" {
				if err := os.Setenv("API_URL", apiURL); err != nil {
					return err
				}
			}
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.log = logger.New(cfg.LogLevel)
			state.log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides API_URL)")

	root.AddCommand(
		newSubmitCmd(state),
		newRefsCmd(state),
		newTokenCmd(state),
	)
	return root
}
