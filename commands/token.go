package commands

import (
	"fmt"
	"time"

	"healthtrack/middleware"

	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed API token (used when AUTH_ENABLED=true)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := time.Duration(cfg.JWTTTLHours) * time.Hour
		token, err := middleware.GenerateJWT(cfg.JWTKey, tokenSubject, ttl)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject (operator name)")
}
