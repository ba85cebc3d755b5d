// Package main is the entry point for the dungeon gRPC server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-api",
	Short: "Dungeon layout gRPC server",
	Long: `Dungeon API lays out procedural dungeons: rooms placed on a grid, joined by a
Delaunay triangulation reduced to a minimum spanning tree, with corridors carved by A*.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
