package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadform/internal/middleware"
	jwtsvc "leadform/internal/pkg/jwt"
)

func newTokenCmd(state *cliState) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := jwtsvc.New(state.cfg.JWTSecret, state.cfg.JWTTTL).GenerateToken(subject, middleware.RoleOperator)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	return cmd
}
