package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Browse indexed media",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List media in the library",
		Args:  cobra.NoArgs,
		RunE:  runMediaList,
	}
	listCmd.Flags().StringP("type", "t", "", "Filter by type (movie, tvshow, music)")
	listCmd.Flags().IntP("limit", "l", 50, "Maximum number of items to return")

	refreshCmd := &cobra.Command{
		Use:   "refresh <media-id>",
		Short: "Refresh metadata from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runMediaRefresh,
	}

	mediaCmd.AddCommand(listCmd, refreshCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	mediaType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := client.ListMedia(mediaType, limit)
	if err != nil {
		return fmt.Errorf("list media failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No media indexed. Add a library and scan it first.")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-6s  %s\n", "ID", "TYPE", "YEAR", "TITLE")
	for _, m := range resp.Items {
		year := "-"
		if m.Year != nil {
			year = fmt.Sprintf("%d", *m.Year)
		}
		fmt.Printf("%-36s  %-8s  %-6s  %s\n", m.ID, m.Type, year, m.Title)
	}
	fmt.Printf("\n%d of %d items\n", len(resp.Items), resp.Total)
	return nil
}

func runMediaRefresh(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	media, err := client.RefreshMetadata(args[0])
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if jsonOutput {
		printJSON(media)
		return nil
	}

	fmt.Printf("Refreshed %q", media.Title)
	if media.Year != nil {
		fmt.Printf(" (%d)", *media.Year)
	}
	if media.Rating != nil {
		fmt.Printf("  rating %.1f", *media.Rating)
	}
	fmt.Println()
	return nil
}
