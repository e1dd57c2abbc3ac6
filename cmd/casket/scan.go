package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <library-id>",
	Short: "Scan a library for new files",
	Long: `Walk a library's directory tree and index newly added files.
Files already in the database are skipped, so repeated scans are safe.

Examples:
  casket scan 0b5e2c1a-...   # Scan one library
  casket library list        # Find library IDs`,
	Args: cobra.ExactArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	resp, err := client.Scan(args[0])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Println(resp.Message)
	if r := resp.Results; r != nil {
		if r.Message != "" {
			fmt.Printf("  %s\n", r.Message)
		}
		if r.Added > 0 || r.Existing > 0 {
			fmt.Printf("  Added:    %d\n", r.Added)
			fmt.Printf("  Existing: %d\n", r.Existing)
		}
		if r.AddedEpisodes > 0 || r.ExistingEpisodes > 0 {
			fmt.Printf("  Shows:    %d added\n", r.AddedShows)
			fmt.Printf("  Seasons:  %d added\n", r.AddedSeasons)
			fmt.Printf("  Episodes: %d added, %d existing\n", r.AddedEpisodes, r.ExistingEpisodes)
		}
	}
	return nil
}
