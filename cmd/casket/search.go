package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the metadata catalog",
	Long: `Search the metadata catalog for movies and TV shows. Requires the
server to be configured with a catalog API key.

Examples:
  casket search "The Matrix"
  casket search --type tv "Breaking Bad"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("type", "t", "", "Filter by type (movie, tv)")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	mediaType, _ := cmd.Flags().GetString("type")
	query := strings.Join(args, " ")

	resp, err := client.Search(query, mediaType)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Printf("No results for %q\n", query)
		return nil
	}

	fmt.Printf("Results for %q (%d):\n\n", query, resp.TotalResults)
	for _, r := range resp.Results {
		year := ""
		if r.Year > 0 {
			year = fmt.Sprintf(" (%d)", r.Year)
		}
		fmt.Printf("  %s%s  [%s]  %.1f\n", r.Title, year, r.MediaType, r.Rating)
		if r.Overview != "" {
			fmt.Printf("    %s\n", truncate(r.Overview, 100))
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
