package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
)

var (
	credsEmail     string
	credsPassword  string
	credsWorkspace int64
)

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Manage stored Arena credentials",
}

var credsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store Arena credentials in the state file",
	Long: `Store Arena credentials under $ARENA_MCP_HOME/state (default
/var/lib/arena-mcp/state) with 0600 permissions. ARENA_EMAIL and
ARENA_PASSWORD in the environment still take precedence when set.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if credsEmail == "" || credsPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		c := credentials.Credentials{
			Email:       credsEmail,
			Password:    credsPassword,
			WorkspaceID: credsWorkspace,
		}
		if err := credentials.Put("", c); err != nil {
			return err
		}
		fmt.Println("Credentials stored.")
		return nil
	},
}

var credsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which credentials would be used (never the password)",
	RunE: func(_ *cobra.Command, _ []string) error {
		creds, source, err := credentials.Load("")
		if err != nil {
			return err
		}
		if source == "missing" {
			fmt.Println("No credentials configured.")
			return nil
		}
		fmt.Printf("Source: %s\n", source)
		fmt.Printf("Email: %s\n", creds.Email)
		if creds.WorkspaceID != 0 {
			fmt.Printf("Workspace: %d\n", creds.WorkspaceID)
		}
		return nil
	},
}

var credsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove stored credentials",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := credentials.Delete(""); err != nil {
			return err
		}
		fmt.Println("Stored credentials removed.")
		return nil
	},
}

func init() {
	credsSetCmd.Flags().StringVar(&credsEmail, "email", "", "Arena account email")
	credsSetCmd.Flags().StringVar(&credsPassword, "password", "", "Arena account password")
	credsSetCmd.Flags().Int64Var(&credsWorkspace, "workspace", 0, "Arena workspace id (optional)")
	credsCmd.AddCommand(credsSetCmd, credsShowCmd, credsClearCmd)
	rootCmd.AddCommand(credsCmd)
}
