package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/carbonrobotics/arena-mcp-server/internal/tools"
)

var toolsFormat string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool manifest (names, descriptions, input schemas)",
	RunE: func(_ *cobra.Command, _ []string) error {
		manifest, err := tools.Manifest()
		if err != nil {
			return err
		}
		switch toolsFormat {
		case "json":
			out, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		case "yaml":
			out, err := yaml.Marshal(manifest)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", toolsFormat)
		}
		return nil
	},
}

func init() {
	toolsCmd.Flags().StringVar(&toolsFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(toolsCmd)
}
