package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
	pkgjwt "github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the admin-only API routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		subject, _ := cmd.Flags().GetString("subject")
		role, _ := cmd.Flags().GetString("role")
		expiry, _ := cmd.Flags().GetDuration("expiry")
		if expiry <= 0 {
			expiry = cfg.JWT.AccessExpiry
		}

		token, err := pkgjwt.NewManager(cfg.JWT.AccessSecret, expiry, cfg.JWT.Issuer).GenerateToken(subject, role)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "ops", "token subject")
	tokenCmd.Flags().String("role", pkgjwt.RoleAdmin, "token role")
	tokenCmd.Flags().Duration("expiry", time.Duration(0), "token lifetime (default JWT_ACCESS_EXPIRY)")

	rootCmd.AddCommand(tokenCmd)
}
