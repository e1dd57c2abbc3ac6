package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage libraries",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured libraries",
		Args:  cobra.NoArgs,
		RunE:  runLibraryList,
	}

	addCmd := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Add a library",
		Long: `Register a directory as a library. The path must exist on the
server's filesystem.

Examples:
  casket library add Movies /mnt/media/movies
  casket library add Shows /mnt/media/tv --type tvshow
  casket library add Music /mnt/media/music --type music --auto-scan=false`,
		Args: cobra.ExactArgs(2),
		RunE: runLibraryAdd,
	}
	addCmd.Flags().StringP("type", "t", "movie", "Media type (movie, tvshow, music)")
	addCmd.Flags().Bool("auto-scan", true, "Include in periodic scan runs")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a library",
		Long:  "Remove a library. Media already indexed from it is kept.",
		Args:  cobra.ExactArgs(1),
		RunE:  runLibraryRemove,
	}

	libraryCmd.AddCommand(listCmd, addCmd, removeCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	libs, err := client.Libraries()
	if err != nil {
		return fmt.Errorf("list libraries failed: %w", err)
	}

	if jsonOutput {
		printJSON(libs)
		return nil
	}

	if len(libs) == 0 {
		fmt.Println("No libraries configured. Use 'casket library add' to add one.")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-20s  %s\n", "ID", "TYPE", "NAME", "PATH")
	for _, l := range libs {
		fmt.Printf("%-36s  %-8s  %-20s  %s\n", l.ID, l.Type, l.Name, l.Path)
	}
	return nil
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	mediaType, _ := cmd.Flags().GetString("type")
	autoScan, _ := cmd.Flags().GetBool("auto-scan")

	lib, err := client.AddLibrary(args[0], args[1], mediaType, autoScan)
	if err != nil {
		return fmt.Errorf("add library failed: %w", err)
	}

	if jsonOutput {
		printJSON(lib)
		return nil
	}

	fmt.Printf("Added %s library %q (%s)\n", lib.Type, lib.Name, lib.ID)
	fmt.Printf("Run 'casket scan %s' to index it.\n", lib.ID)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if err := client.RemoveLibrary(args[0]); err != nil {
		return fmt.Errorf("remove library failed: %w", err)
	}

	if !jsonOutput {
		fmt.Printf("Removed library %s\n", args[0])
	}
	return nil
}
