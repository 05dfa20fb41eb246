package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/app"
	"github.com/carbonrobotics/arena-mcp-server/internal/config"
	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
	"github.com/carbonrobotics/arena-mcp-server/internal/logging"
)

var checkLogin bool

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration, credentials, and Arena connectivity",
	Long: `Check that the server is ready to run by verifying:
  • configuration and transport
  • Arena credentials (environment or state file)
  • optionally, a live login against the Arena API (--login)`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println(sectionStyle.Render("Arena MCP Server Check"))
		fmt.Println()

		// Step 1: configuration
		fmt.Println(infoStyle.Render("Step 1: Checking configuration..."))
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			fmt.Println(errorStyle.Render("❌ Invalid configuration:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Configuration valid"))
		fmt.Printf("   Transport: %s\n", cfg.Transport)
		if cfg.Transport == config.TransportHTTP {
			fmt.Printf("   Listen: %s\n", cfg.Addr())
			if cfg.DisableAuth {
				fmt.Println(warningStyle.Render("⚠️  Authentication is DISABLED"))
			} else if cidrs := cfg.Allowlist(); len(cidrs) > 0 {
				fmt.Printf("   Allowlist: %s\n", strings.Join(cidrs, ", "))
			}
		}
		fmt.Printf("   Arena API: %s\n", cfg.BaseURL)
		fmt.Println()

		// Step 2: credentials
		fmt.Println(infoStyle.Render("Step 2: Checking credentials..."))
		creds, source, err := credentials.Load("")
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load credentials:"), err)
			os.Exit(1)
		}
		if !creds.Complete() {
			fmt.Println(errorStyle.Render("❌ No credentials found"))
			fmt.Println("   Set ARENA_EMAIL and ARENA_PASSWORD, or run `arena-mcp creds set`")
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Credentials found"))
		fmt.Printf("   Email: %s (from %s)\n", creds.Email, source)
		if creds.WorkspaceID != 0 {
			fmt.Printf("   Workspace: %d\n", creds.WorkspaceID)
		}
		fmt.Println()

		// Step 3: optional live login
		if !checkLogin {
			fmt.Println(infoStyle.Render("Step 3: Live login skipped (use --login to test)"))
			return nil
		}
		fmt.Println(infoStyle.Render("Step 3: Logging in to Arena..."))
		logger, cleanup, err := logging.New("arena-mcp-check", cfg.LogLevel)
		if err != nil {
			return err
		}
		defer cleanup()

		client := app.NewArenaClient(cfg, creds, logger)
		if err := client.EnsureSession(cmd.Context()); err != nil {
			fmt.Println(errorStyle.Render("❌ Login failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Login succeeded"))
		if id := client.WorkspaceID(); id != 0 {
			fmt.Printf("   Workspace: %d\n", id)
		}
		_ = client.Logout(cmd.Context())
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkLogin, "login", false, "perform a live login against the Arena API")
	rootCmd.AddCommand(checkCmd)
}
