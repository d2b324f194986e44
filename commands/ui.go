package commands

import (
	"healthtrack/apiclient"
	"healthtrack/tui"

	"github.com/spf13/cobra"
)

var apiURL string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal UI against a running API",
	RunE: func(cmd *cobra.Command, args []string) error {
		base := cfg.APIURL
		if apiURL != "" {
			base = apiURL
		}
		client := apiclient.New(base, apiclient.WithToken(cfg.APIToken))
		return tui.Run(cmd.Context(), client)
	},
}

func init() {
	uiCmd.Flags().StringVar(&apiURL, "api", "", "API base URL (defaults to API_URL)")
}
